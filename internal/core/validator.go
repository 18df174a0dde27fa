package core

import (
	"fmt"
	"strings"
)

// supportedStores 内置支持的Store类型
var supportedStores = []string{"file", "postgresql", "mysql", "oracle"}

// ConfigValidator 配置验证器接口
type ConfigValidator interface {
	Validate() error
}

// JobConfigValidator 任务配置验证器
type JobConfigValidator struct {
	config *JobConfig
}

// NewJobConfigValidator 创建新的任务配置验证器
func NewJobConfigValidator(config *JobConfig) *JobConfigValidator {
	return &JobConfigValidator{
		config: config,
	}
}

// Validate 验证任务配置
func (v *JobConfigValidator) Validate() error {
	if v.config == nil {
		return fmt.Errorf("配置不能为空")
	}

	// 验证基本结构
	if err := v.validateBasicStructure(); err != nil {
		return fmt.Errorf("基本结构验证失败: %v", err)
	}

	// 验证内容配置
	if err := v.validateContent(); err != nil {
		return fmt.Errorf("内容配置验证失败: %v", err)
	}

	return nil
}

// validateBasicStructure 验证基本结构
func (v *JobConfigValidator) validateBasicStructure() error {
	if len(v.config.Job.Content) == 0 {
		return fmt.Errorf("任务配置中没有content")
	}

	if len(v.config.Job.Content) > 1 {
		return fmt.Errorf("当前版本只支持单个content配置")
	}

	return nil
}

// validateContent 验证内容配置
func (v *JobConfigValidator) validateContent() error {
	content := v.config.Job.Content[0]

	if err := v.validateStoreName(content.Reader.Name); err != nil {
		return fmt.Errorf("Reader配置验证失败: %v", err)
	}
	if err := v.validateReaderTarget(content.Reader.Name, &content.Reader.Target); err != nil {
		return fmt.Errorf("Reader配置验证失败: %v", err)
	}

	if err := v.validateStoreName(content.Writer.Name); err != nil {
		return fmt.Errorf("Writer配置验证失败: %v", err)
	}
	if err := v.validateWriterTarget(content.Writer.Name, &content.Writer.Target); err != nil {
		return fmt.Errorf("Writer配置验证失败: %v", err)
	}

	return nil
}

// validateStoreName 验证Store名称是否支持
func (v *JobConfigValidator) validateStoreName(name string) error {
	if name == "" {
		return fmt.Errorf("Store名称不能为空")
	}

	if !contains(supportedStores, name) {
		return fmt.Errorf("不支持的Store类型: %s，支持的类型: %s",
			name, strings.Join(supportedStores, ", "))
	}

	return nil
}

// validateReaderTarget 根据Store类型验证读取目标
func (v *JobConfigValidator) validateReaderTarget(name string, target *Target) error {
	if name == "file" {
		if target.Path == "" {
			return fmt.Errorf("file读取目标缺少path")
		}
		return nil
	}

	if target.Table == "" {
		return fmt.Errorf("%s读取目标缺少table", name)
	}
	return nil
}

// validateWriterTarget 根据Store类型验证写入目标
func (v *JobConfigValidator) validateWriterTarget(name string, target *Target) error {
	if name == "file" {
		if target.BaseName == "" {
			return fmt.Errorf("file写入目标缺少baseName")
		}
		if target.OutputDir == "" {
			return fmt.Errorf("file写入目标缺少outputDir")
		}
		if target.Extension == "" {
			return fmt.Errorf("file写入目标缺少extension")
		}
		return nil
	}

	if target.Table == "" {
		return fmt.Errorf("%s写入目标缺少table", name)
	}
	return nil
}

// ValidateJobConfig 验证任务配置的便捷函数
func ValidateJobConfig(config *JobConfig) error {
	return NewJobConfigValidator(config).Validate()
}

// contains 检查字符串切片中是否包含指定值
func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
