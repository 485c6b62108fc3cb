package util

import "errors"

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrCourseNotFound     = errors.New("course not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrTopicNotFound      = errors.New("topic not found")
	ErrContentLocked      = errors.New("course content is locked until payment is verified")
	ErrCourseNotSelfPaced = errors.New("course has no self-paced topics")
	ErrScreenshotRequired = errors.New("payment screenshot is required")
	ErrScreenshotTooLarge = errors.New("payment screenshot exceeds the size limit")
	ErrInvalidDecision    = errors.New("decision must be approve or reject")
	ErrInvalidMediaExt    = errors.New("unsupported media file extension")
	ErrMediaTooLarge      = errors.New("media file exceeds the size limit")
	ErrMediaNotFound      = errors.New("media item not found")
)
