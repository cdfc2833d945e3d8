package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"docsync/pkg/core"
	"docsync/pkg/notebook"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "docsync 错误: %v\n", err)
		if convErr, ok := notebook.AsConversionError(err); ok && convErr.Output != "" {
			fmt.Fprintln(os.Stderr, convErr.Output)
		}
		stop()
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	watch      bool
	flags      core.SyncConfig
}

func newRootCmd() *cobra.Command {
	cmd, _ := buildRootCmd()
	return cmd
}

func buildRootCmd() (*cobra.Command, *rootOptions) {
	defaults := core.DefaultConfig()
	opts := &rootOptions{flags: *defaults}

	cmd := &cobra.Command{
		Use:           "docsync",
		Short:         "将文档源目录增量同步到构建目录，并把 MyST notebook 转换为 ipynb",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if opts.watch {
				return core.Watch(ctx, cfg)
			}
			_, err = core.Run(ctx, cfg)
			return err
		},
	}

	f := &opts.flags
	flags := cmd.Flags()
	flags.StringVarP(&f.SourceRoot, "source", "s", defaults.SourceRoot, "文档源目录")
	flags.StringVarP(&f.TargetRoot, "target", "t", defaults.TargetRoot, "构建输出目录，不存在时自动创建")
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML 配置文件，默认读取工作目录下的 "+core.ConfigFileName)
	flags.StringVar(&f.Converter.Program, "converter", defaults.Converter.Program, "notebook 转换程序")
	flags.StringVar(&f.Converter.From, "from", defaults.Converter.From, "转换源格式")
	flags.StringVar(&f.Converter.To, "to", defaults.Converter.To, "转换目标格式")
	flags.StringArrayVar(&f.Excludes, "exclude", nil, "gitignore 风格的排除模式，可多次指定")
	flags.BoolVar(&f.DryRun, "dry-run", false, "演示模式，只展示计划")
	flags.BoolVarP(&opts.watch, "watch", "w", false, "同步后持续监听源目录变化")
	flags.DurationVar(&f.Debounce, "debounce", defaults.Debounce, "监听模式下合并事件的等待时间")
	flags.BoolVar(&f.NoProgress, "no-progress", false, "禁用进度条显示")
	flags.StringVar(&f.LogFile, "log-file", "", "额外写入的日志文件")
	flags.StringVar(&f.LogLevel, "log-level", defaults.LogLevel, "日志级别：debug / info / warn / error")
	flags.StringVar(&f.LogFormat, "log-format", defaults.LogFormat, "日志格式：text / json")
	return cmd, opts
}

// resolve 合并默认值、配置文件与显式指定的参数，参数优先
func (o *rootOptions) resolve(cmd *cobra.Command) (*core.SyncConfig, error) {
	cfg := core.DefaultConfig()
	configPath := o.configPath
	if configPath == "" {
		found, err := core.FindConfigFile()
		if err != nil {
			return nil, err
		}
		configPath = found
	}
	if configPath != "" {
		fc, err := core.LoadConfigFile(configPath)
		if err != nil {
			return nil, err
		}
		fc.Apply(cfg)
	}

	f := &o.flags
	override := map[string]func(){
		"source":      func() { cfg.SourceRoot = f.SourceRoot },
		"target":      func() { cfg.TargetRoot = f.TargetRoot },
		"converter":   func() { cfg.Converter.Program = f.Converter.Program },
		"from":        func() { cfg.Converter.From = f.Converter.From },
		"to":          func() { cfg.Converter.To = f.Converter.To },
		"exclude":     func() { cfg.Excludes = f.Excludes },
		"debounce":    func() { cfg.Debounce = f.Debounce },
		"log-file":    func() { cfg.LogFile = f.LogFile },
		"log-level":   func() { cfg.LogLevel = f.LogLevel },
		"log-format":  func() { cfg.LogFormat = f.LogFormat },
		"dry-run":     func() { cfg.DryRun = f.DryRun },
		"no-progress": func() { cfg.NoProgress = f.NoProgress },
	}
	flags := cmd.Flags()
	for name, apply := range override {
		if flags.Changed(name) {
			apply()
		}
	}
	return cfg, nil
}
