// 初始化课程目录演示数据脚本
//
// 首次部署或演示环境搭建时手动执行，向空目录写入两门示例课程。
// 目录非空时直接退出，不会产生重复数据。
//
// 用法: go run scripts/seed_catalog.go

package main

import (
	"fitacademy_backend/internal/config"
	"fitacademy_backend/internal/model"
	"fitacademy_backend/pkg/database"
	"fitacademy_backend/pkg/logger"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	var count int64
	db.Model(&model.Course{}).Count(&count)
	if count > 0 {
		log.Printf("目录已有 %d 门课程，跳过初始化", count)
		return
	}

	courses := []model.Course{
		{
			Title:       "居家力量训练入门",
			Description: "零器械起步的自学力量课程，覆盖动作模式、组次安排与恢复。",
			Objectives:  "掌握基础动作模式并独立完成 8 周训练计划",
			Type:        model.SelfPaced,
			Price:       299,
			Published:   true,
			Topics: []model.Topic{
				{Order: 1, Title: "动作模式基础", Duration: "45m", Content: "髋铰链、下蹲与推拉的要点讲解。"},
				{Order: 2, Title: "组次与强度安排", Duration: "40m", Content: "如何根据 RPE 安排每周训练量。"},
				{Order: 3, Title: "恢复与睡眠", Duration: "30m", Content: "训练日与休息日的恢复策略。"},
			},
		},
		{
			Title:       "线下私教体态矫正",
			Description: "教练带练的体态评估与矫正课程，按预约时间到馆上课。",
			Objectives:  "完成体态评估并建立个性化矫正方案",
			Type:        model.Guided,
			Price:       1999,
			Published:   true,
			Syllabus: []model.SyllabusSession{
				{Order: 1, Title: "体态评估", Learnings: "静态与动态评估方法", Outcomes: "确定矫正优先级", Hours: 1.5},
				{Order: 2, Title: "呼吸与核心激活", Learnings: "腹内压与呼吸节奏", Outcomes: "建立核心稳定基础", Hours: 1.5},
				{Order: 3, Title: "矫正训练", Learnings: "专项矫正动作库", Outcomes: "独立执行矫正计划", Hours: 2},
			},
		},
	}

	for i := range courses {
		if err := db.Create(&courses[i]).Error; err != nil {
			log.Fatalf("写入课程失败: %v", err)
		}
	}

	log.Printf("已写入 %d 门示例课程", len(courses))
}
