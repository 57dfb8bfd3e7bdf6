package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"waveform/types"
	"waveform/utils"

	"gopkg.in/yaml.v3"
)

// 存储驱动
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// StoreSettings 快照存储设置
type StoreSettings struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"` // 为空时使用默认路径
}

// OutputSettings 图像输出尺寸，单位厘米
type OutputSettings struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Settings 命令行视图设置
type Settings struct {
	Timing    bool           `yaml:"timing"`
	Threshold *float64       `yaml:"threshold"`
	Spacing   float64        `yaml:"spacing"`
	Legend    bool           `yaml:"legend"`
	Grid      bool           `yaml:"grid"`
	LogLevel  string         `yaml:"log_level"`
	Store     StoreSettings  `yaml:"store"`
	Output    OutputSettings `yaml:"output"`
}

// DefaultSettings 默认视图设置
func DefaultSettings() *Settings {
	return &Settings{
		Spacing:  types.DefaultVerticalSpacing,
		Grid:     true,
		LogLevel: "info",
		Store:    StoreSettings{Driver: DriverFile},
		Output:   OutputSettings{Width: 16, Height: 10},
	}
}

// DefaultPath 默认快照路径 ~/.waveform/config.json
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".waveform", "config.json")
	}
	return filepath.Join(home, ".waveform", "config.json")
}

// LoadSettings 读取设置文件并应用环境变量
// 路径为空时只使用默认值与环境变量
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: 读取设置 %s: %v", types.ErrConfigIO, path, err)
		}
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("%w: 解析设置 %s: %v", types.ErrConfigIO, path, err)
		}
	}
	applyEnv(s)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate 检查设置取值
func (s *Settings) Validate() error {
	if s.Spacing <= 0 {
		return fmt.Errorf("%w: 间距必须为正数: %g", types.ErrConfigIO, s.Spacing)
	}
	switch s.Store.Driver {
	case DriverFile, DriverSQLite:
	default:
		return fmt.Errorf("%w: 未知存储驱动: %s", types.ErrConfigIO, s.Store.Driver)
	}
	if !utils.LevelKnown(s.LogLevel) {
		return fmt.Errorf("%w: 未知日志级别: %s", types.ErrConfigIO, s.LogLevel)
	}
	if s.Output.Width <= 0 || s.Output.Height <= 0 {
		return fmt.Errorf("%w: 输出尺寸必须为正数", types.ErrConfigIO)
	}
	return nil
}

// applyEnv WAVEFORM_* 环境变量覆盖
func applyEnv(s *Settings) {
	if v := os.Getenv("WAVEFORM_TIMING"); v != "" {
		s.Timing = v == "true" || v == "1"
	}
	if v := os.Getenv("WAVEFORM_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			s.Threshold = &f
		}
	}
	if v := os.Getenv("WAVEFORM_SPACING"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			s.Spacing = f
		}
	}
	if v := os.Getenv("WAVEFORM_LEGEND"); v != "" {
		s.Legend = v == "true" || v == "1"
	}
	if v := os.Getenv("WAVEFORM_GRID"); v != "" {
		s.Grid = v == "true" || v == "1"
	}
	if v := os.Getenv("WAVEFORM_LOG_LEVEL"); v != "" {
		s.LogLevel = v
	}
	if v := os.Getenv("WAVEFORM_STORE_DRIVER"); v != "" {
		s.Store.Driver = v
	}
	if v := os.Getenv("WAVEFORM_STORE_PATH"); v != "" {
		s.Store.Path = os.ExpandEnv(v)
	}
}
