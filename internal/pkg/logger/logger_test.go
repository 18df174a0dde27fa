package logger

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		opt  *Option
		want Level
	}{
		{
			name: "默认选项",
			opt:  nil,
			want: LevelInfo,
		},
		{
			name: "自定义选项",
			opt: &Option{
				Level:    LevelDebug,
				Prefix:   "TEST",
				WithTime: true,
			},
			want: LevelDebug,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.opt)
			if logger.level != tt.want {
				t.Errorf("New() level = %v, want %v", logger.level, tt.want)
			}
			if logger.stdLogger == nil {
				t.Error("New() stdLogger should not be nil")
			}
			logger.Close()
		})
	}
}

func TestLogger_LogLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Option{
		Level:  LevelDebug,
		Prefix: "TEST",
		Output: &buf,
	})
	defer logger.Close()

	// 测试各种日志级别
	logger.Error("error message")
	logger.Warn("warn message")
	logger.Info("info message")
	logger.Debug("debug message")

	logContent := buf.String()
	for _, want := range []string{"[ERROR]", "[WARN]", "[INFO]", "[DEBUG]", "TEST", "error message", "debug message"} {
		if !strings.Contains(logContent, want) {
			t.Errorf("log output should contain %q, got:\n%s", want, logContent)
		}
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Option{
		Level:  LevelWarn,
		Output: &buf,
	})
	defer logger.Close()

	logger.Error("error message")
	logger.Warn("warn message")
	logger.Info("info message")
	logger.Debug("debug message")

	logContent := buf.String()
	if !strings.Contains(logContent, "error message") || !strings.Contains(logContent, "warn message") {
		t.Errorf("ERROR and WARN should be logged, got:\n%s", logContent)
	}
	if strings.Contains(logContent, "info message") || strings.Contains(logContent, "debug message") {
		t.Errorf("INFO and DEBUG should be filtered at WARN level, got:\n%s", logContent)
	}
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Option{
		Level:  LevelError,
		Output: &buf,
	})
	defer logger.Close()

	logger.Info("before")
	logger.SetLevel(LevelInfo)
	logger.Info("after")

	logContent := buf.String()
	if strings.Contains(logContent, "before") {
		t.Error("INFO should be filtered before SetLevel")
	}
	if !strings.Contains(logContent, "after") {
		t.Error("INFO should be logged after SetLevel")
	}

	if logger.GetLevel() != LevelInfo {
		t.Errorf("GetLevel() = %v, want LevelInfo", logger.GetLevel())
	}
}

func TestLogger_LogFile(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "test_log_*.log")
	if err != nil {
		t.Fatalf("创建临时文件失败: %v", err)
	}
	defer os.Remove(tmpFile.Name())
	defer tmpFile.Close()

	logger := New(&Option{
		Level:   LevelInfo,
		LogFile: tmpFile.Name(),
	})

	logger.Info("file message")
	logger.Close()

	tmpFile.Seek(0, 0)
	content, err := io.ReadAll(tmpFile)
	if err != nil {
		t.Fatalf("读取日志文件失败: %v", err)
	}

	if !strings.Contains(string(content), "file message") {
		t.Errorf("log file should contain message, got:\n%s", content)
	}
}

func TestGetLevelName(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelError, "ERROR"},
		{LevelWarn, "WARN"},
		{LevelInfo, "INFO"},
		{LevelDebug, "DEBUG"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := GetLevelName(tt.level); got != tt.want {
			t.Errorf("GetLevelName(%v) = %s, want %s", tt.level, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("DEBUG")
	if err != nil || level != LevelDebug {
		t.Errorf("ParseLevel(DEBUG) = (%v, %v), want (LevelDebug, nil)", level, err)
	}

	if _, err := ParseLevel("VERBOSE"); err == nil {
		t.Error("ParseLevel should fail for unknown level")
	}
}
