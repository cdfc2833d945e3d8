package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"docsync/pkg/notebook"
)

// ConfigFileName 是工作目录下自动加载的配置文件名
const ConfigFileName = "docsync.yaml"

// FileConfig 对应 YAML 配置文件
type FileConfig struct {
	Source    string                   `yaml:"source"`
	Target    string                   `yaml:"target"`
	Exclude   []string                 `yaml:"exclude"`
	Converter notebook.ConverterConfig `yaml:"converter"`
	LogLevel  string                   `yaml:"log_level"`
	LogFormat string                   `yaml:"log_format"`
	LogFile   string                   `yaml:"log_file"`
	Debounce  time.Duration            `yaml:"debounce"`
}

// LoadConfigFile 读取并解析配置文件
func LoadConfigFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("解析配置文件 %s 失败: %w", path, err)
	}
	return &fc, nil
}

// FindConfigFile 在工作目录中查找默认配置文件，不存在时返回空字符串
func FindConfigFile() (string, error) {
	if _, err := os.Stat(ConfigFileName); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return ConfigFileName, nil
}

// Apply 将配置文件中非空的字段写入 cfg
func (f *FileConfig) Apply(cfg *SyncConfig) {
	if f.Source != "" {
		cfg.SourceRoot = f.Source
	}
	if f.Target != "" {
		cfg.TargetRoot = f.Target
	}
	if len(f.Exclude) > 0 {
		cfg.Excludes = append([]string(nil), f.Exclude...)
	}
	if f.Converter.Program != "" {
		cfg.Converter.Program = f.Converter.Program
	}
	if f.Converter.From != "" {
		cfg.Converter.From = f.Converter.From
	}
	if f.Converter.To != "" {
		cfg.Converter.To = f.Converter.To
	}
	if f.LogLevel != "" {
		cfg.LogLevel = f.LogLevel
	}
	if f.LogFormat != "" {
		cfg.LogFormat = f.LogFormat
	}
	if f.LogFile != "" {
		cfg.LogFile = f.LogFile
	}
	if f.Debounce > 0 {
		cfg.Debounce = f.Debounce
	}
}
