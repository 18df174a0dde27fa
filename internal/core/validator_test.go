package core

import (
	"encoding/json"
	"strings"
	"testing"
)

// buildJobConfig 构造一个合法的file -> postgresql任务配置
func buildJobConfig() *JobConfig {
	raw := `{
		"job": {
			"content": [{
				"reader": {"name": "file", "target": {"path": "data/input.csv"}},
				"writer": {"name": "postgresql", "target": {"table": "users"}}
			}]
		}
	}`

	var config JobConfig
	if err := json.Unmarshal([]byte(raw), &config); err != nil {
		panic(err)
	}
	return &config
}

func TestValidateJobConfig_Valid(t *testing.T) {
	if err := ValidateJobConfig(buildJobConfig()); err != nil {
		t.Errorf("valid config should pass, got error: %v", err)
	}
}

func TestValidateJobConfig_Nil(t *testing.T) {
	if err := NewJobConfigValidator(nil).Validate(); err == nil {
		t.Error("nil config should fail validation")
	}
}

func TestValidateJobConfig_EmptyContent(t *testing.T) {
	config := &JobConfig{}
	err := ValidateJobConfig(config)
	if err == nil {
		t.Error("config without content should fail validation")
	}
}

func TestValidateJobConfig_UnsupportedStore(t *testing.T) {
	config := buildJobConfig()
	config.Job.Content[0].Reader.Name = "redis"

	err := ValidateJobConfig(config)
	if err == nil {
		t.Fatal("unsupported store should fail validation")
	}
	if !strings.Contains(err.Error(), "不支持的Store类型") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestValidateJobConfig_MissingFilePath(t *testing.T) {
	config := buildJobConfig()
	config.Job.Content[0].Reader.Target = Target{}

	if err := ValidateJobConfig(config); err == nil {
		t.Error("file reader without path should fail validation")
	}
}

func TestValidateJobConfig_MissingTable(t *testing.T) {
	config := buildJobConfig()
	config.Job.Content[0].Writer.Target = Target{}

	if err := ValidateJobConfig(config); err == nil {
		t.Error("relational writer without table should fail validation")
	}
}

func TestValidateJobConfig_MissingFileWriterFields(t *testing.T) {
	config := buildJobConfig()
	config.Job.Content[0].Writer.Name = "file"

	tests := []struct {
		name   string
		target Target
	}{
		{"缺少baseName", Target{OutputDir: "out", Extension: "csv"}},
		{"缺少outputDir", Target{BaseName: "data", Extension: "csv"}},
		{"缺少extension", Target{BaseName: "data", OutputDir: "out"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config.Job.Content[0].Writer.Target = tt.target
			if err := ValidateJobConfig(config); err == nil {
				t.Error("incomplete file writer target should fail validation")
			}
		})
	}
}
