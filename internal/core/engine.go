package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"dataio/internal/pkg/logger"
)

// JobConfig 作业配置结构
type JobConfig struct {
	Job struct {
		Content []struct {
			Reader struct {
				Name      string          `json:"name"`
				Parameter json.RawMessage `json:"parameter"`
				Target    Target          `json:"target"`
			} `json:"reader"`
			Writer struct {
				Name      string          `json:"name"`
				Parameter json.RawMessage `json:"parameter"`
				Target    Target          `json:"target"`
			} `json:"writer"`
		} `json:"content"`
	} `json:"job"`
}

// Engine 数据搬运引擎，把一份表格数据从源存储搬到目标存储
type Engine struct {
	jobConfig *JobConfig
	registry  *StoreRegistry
	source    Store
	dest      Store
	logger    *logger.Logger
}

// NewEngine 创建新的数据搬运引擎实例
func NewEngine(config *JobConfig) *Engine {
	return &Engine{
		jobConfig: config,
		registry:  DefaultRegistry,
		logger: logger.New(&logger.Option{
			Level:    logger.LevelInfo,
			Prefix:   "Engine",
			WithTime: true,
		}),
	}
}

// SetRegistry 替换注册器（主要用于测试）
func (e *Engine) SetRegistry(registry *StoreRegistry) {
	e.registry = registry
}

// Init 初始化引擎，创建源和目标Store
func (e *Engine) Init() error {
	if e.jobConfig == nil || len(e.jobConfig.Job.Content) == 0 {
		return fmt.Errorf("任务配置中没有content")
	}

	// 目前只处理第一个content
	content := e.jobConfig.Job.Content[0]

	source, err := e.registry.CreateStore(content.Reader.Name, decodeParameter(content.Reader.Parameter))
	if err != nil {
		return fmt.Errorf("创建源Store失败: %v", err)
	}
	e.source = source

	dest, err := e.registry.CreateStore(content.Writer.Name, decodeParameter(content.Writer.Parameter))
	if err != nil {
		return fmt.Errorf("创建目标Store失败: %v", err)
	}
	e.dest = dest

	return nil
}

// Start 开始数据搬运
func (e *Engine) Start() error {
	startTime := time.Now()
	content := e.jobConfig.Job.Content[0]

	e.logger.Info("开始数据搬运任务: %s -> %s", content.Reader.Name, content.Writer.Name)

	// 从源读取全部数据
	data, err := e.source.Read(&content.Reader.Target)
	if err != nil {
		return fmt.Errorf("读取源数据失败: %v", err)
	}
	e.logger.Info("读取完成: %d 列, %d 行", len(data.Columns), data.RowCount())

	// 写入目标
	if err := e.dest.Write(data, &content.Writer.Target); err != nil {
		return fmt.Errorf("写入目标失败: %v", err)
	}

	e.logger.Info("数据搬运完成! 总耗时: %v, 处理记录数: %d", time.Since(startTime), data.RowCount())
	return nil
}

// decodeParameter 解码RawMessage参数，保留数值精度
func decodeParameter(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var v any
	if err := decoder.Decode(&v); err != nil {
		return nil
	}
	return v
}
