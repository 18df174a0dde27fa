package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"dataio/internal/core"
	"dataio/internal/pkg/logger"
	"dataio/internal/storage"
)

// 版本信息，在编译时通过 -ldflags 注入
var (
	Version   = "dev"
	BuildTime = "unknown"
	CommitID  = "unknown"
)

var log *logger.Logger

func init() {
	// 初始化日志记录器
	log = logger.New(&logger.Option{
		Level:    logger.LevelInfo,
		Prefix:   "DataIO",
		WithTime: true,
	})
}

func main() {
	if err := run(); err != nil {
		log.Error("程序执行失败: %v", err)
		os.Exit(1)
	}
}

// run 主要的程序逻辑，返回错误而不是直接退出
func run() error {
	// 解析命令行参数
	var jobFile string
	var showVersion bool
	flag.StringVar(&jobFile, "job", "", "任务配置文件路径")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.Parse()

	// 显示版本信息
	if showVersion {
		log.Info("DataIO 版本: %s", Version)
		log.Info("构建时间: %s", BuildTime)
		log.Info("提交ID: %s", CommitID)
		return nil
	}

	if jobFile == "" {
		return fmt.Errorf("请指定任务配置文件路径")
	}

	// 读取任务配置文件
	content, err := os.ReadFile(jobFile)
	if err != nil {
		return fmt.Errorf("读取任务配置文件失败: %v", err)
	}

	// 解析任务配置
	var jobConfig core.JobConfig
	decoder := json.NewDecoder(bytes.NewReader(content))
	decoder.UseNumber()
	if err := decoder.Decode(&jobConfig); err != nil {
		return fmt.Errorf("解析任务配置失败: %v", err)
	}

	// 验证配置
	if err := core.ValidateJobConfig(&jobConfig); err != nil {
		return fmt.Errorf("配置验证失败: %v", err)
	}

	// 注册内置Store
	storage.RegisterBuiltinStores(core.DefaultRegistry)

	// 创建引擎并开始数据搬运
	engine := core.NewEngine(&jobConfig)
	if err := engine.Init(); err != nil {
		return fmt.Errorf("初始化引擎失败: %v", err)
	}

	log.Info("开始数据搬运任务...")
	if err := engine.Start(); err != nil {
		return fmt.Errorf("数据搬运失败: %v", err)
	}
	log.Info("数据搬运完成!")
	return nil
}
