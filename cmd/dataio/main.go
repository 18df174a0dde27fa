package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"log"
	"os"

	"dataio/internal/core"
	"dataio/internal/storage"
)

func main() {
	// 定义命令行参数
	var jobPath string
	flag.StringVar(&jobPath, "job", "", "任务配置文件路径(json)")
	flag.Parse()

	// 检查参数
	if jobPath == "" {
		log.Fatal("请指定任务配置文件路径，使用 -job 参数")
	}

	// 读取任务配置文件
	jobData, err := os.ReadFile(jobPath)
	if err != nil {
		log.Fatalf("读取任务配置文件失败: %v", err)
	}

	var jobConfig core.JobConfig
	decoder := json.NewDecoder(bytes.NewReader(jobData))
	decoder.UseNumber()
	if err := decoder.Decode(&jobConfig); err != nil {
		log.Fatalf("解析任务配置文件失败: %v", err)
	}

	// 验证配置
	if err := core.ValidateJobConfig(&jobConfig); err != nil {
		log.Fatalf("配置验证失败: %v", err)
	}

	// 验证并注册内置Store
	content := jobConfig.Job.Content[0]
	if err := storage.ValidateBuiltinStore(content.Reader.Name); err != nil {
		log.Fatalf("注册源Store失败: %v", err)
	}
	if err := storage.ValidateBuiltinStore(content.Writer.Name); err != nil {
		log.Fatalf("注册目标Store失败: %v", err)
	}
	storage.RegisterBuiltinStores(core.DefaultRegistry)

	// 创建并启动引擎
	engine := core.NewEngine(&jobConfig)
	if err := engine.Init(); err != nil {
		log.Fatalf("初始化引擎失败: %v", err)
	}

	if err := engine.Start(); err != nil {
		log.Fatalf("数据搬运失败: %v", err)
	}
}
