package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"waveform"
	"waveform/config"
	"waveform/cursor"
	"waveform/record"
	"waveform/render"
	"waveform/store"
	"waveform/types"
	"waveform/utils"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "waveform [path] [project]",
		Short: "仿真波形查看",
		Long: `waveform 读取记录的仿真结果，按选择与样式生成曲线图或数字时序图。

path 为记录文件或包含 record.json 的目录，默认当前目录。`,
		Args: cobra.MaximumNArgs(2),
		RunE: runPlot,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringSlice("show", nil, "显示的波形名称")
	flags.Bool("all", false, "显示全部波形")
	flags.Bool("timing", false, "数字时序图")
	flags.Float64("threshold", 0, "逻辑阈值(V)，未设置时自动")
	flags.Float64("spacing", types.DefaultVerticalSpacing, "时序图垂直间距系数")
	flags.Bool("legend", false, "显示图例")
	flags.Bool("grid", true, "显示网格")
	flags.String("settings", "", "视图设置文件(YAML)")
	flags.String("config", "", "样式快照路径")
	flags.String("store", "", "快照存储驱动 file|sqlite")
	flags.String("log-level", "", "日志级别 trace|debug|info|warn|error")
	rootCmd.Flags().StringArray("expr", nil, "表达式，如 \"v(a) + v(b)\" 或 \"v(a) vs v(b)\"")
	rootCmd.Flags().StringSlice("cursor", nil, "游标位置(原始单位)，最多两个")
	rootCmd.Flags().StringP("out", "o", "", "输出图像 png|svg|pdf，为空时打印摘要")

	rootCmd.AddCommand(
		newListCmd(),
		newMeterCmd(),
		newServeCmd(),
	)
	return rootCmd
}

// session 一次命令使用的引擎与设置
type session struct {
	engine   *waveform.Engine
	settings *config.Settings
	log      *slog.Logger
}

// loadSettings 读取设置文件并应用命令行参数
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	path, _ := cmd.Flags().GetString("settings")
	s, err := config.LoadSettings(path)
	if err != nil {
		return nil, err
	}
	f := cmd.Flags()
	if f.Changed("timing") {
		s.Timing, _ = f.GetBool("timing")
	}
	if f.Changed("threshold") {
		v, _ := f.GetFloat64("threshold")
		s.Threshold = &v
	}
	if f.Changed("spacing") {
		s.Spacing, _ = f.GetFloat64("spacing")
	}
	if f.Changed("legend") {
		s.Legend, _ = f.GetBool("legend")
	}
	if f.Changed("grid") {
		s.Grid, _ = f.GetBool("grid")
	}
	if v, _ := f.GetString("config"); v != "" {
		s.Store.Path = v
	}
	if v, _ := f.GetString("store"); v != "" {
		s.Store.Driver = v
	}
	if v, _ := f.GetString("log-level"); v != "" {
		s.LogLevel = v
	}
	return s, s.Validate()
}

// open 加载记录并创建引擎
func open(ctx context.Context, cmd *cobra.Command, args []string) (*session, error) {
	path, project := types.DefaultDataPath, types.DefaultProject
	if len(args) > 0 {
		path = args[0]
	}
	if len(args) > 1 {
		project = args[1]
	}
	settings, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	log := utils.NewLogger(settings.LogLevel, os.Stderr)
	rec, err := record.Load(path)
	if err != nil {
		return nil, err
	}
	st, err := store.Open(ctx, settings.Store)
	if err != nil {
		// 存储不可用时只在内存中保存
		log.Error("打开快照存储失败", "error", err)
		st = store.NewMemory(nil)
	}
	events := utils.NewContext(64)
	go func() {
		for ev := range events.EventReceive() {
			log.Log(context.Background(), utils.LevelTrace, "事件", "type", ev.Type, "value", ev.Value)
		}
	}()
	eng, err := waveform.New(ctx, rec,
		waveform.WithStore(st),
		waveform.WithLogger(log),
		waveform.WithEvents(events),
		waveform.WithProject(project),
		waveform.WithSettings(settings),
	)
	if err != nil {
		st.Close()
		events.Close()
		return nil, err
	}
	if err := selectTraces(cmd, eng); err != nil {
		eng.Close(ctx)
		return nil, err
	}
	return &session{engine: eng, settings: settings, log: log}, nil
}

// selectTraces 按 --all 与 --show 选择波形
func selectTraces(cmd *cobra.Command, eng *waveform.Engine) error {
	if all, _ := cmd.Flags().GetBool("all"); all {
		eng.SelectAll()
	}
	names, _ := cmd.Flags().GetStringSlice("show")
	for _, name := range names {
		i, ok := eng.Lookup(name)
		if !ok {
			return fmt.Errorf("未知波形: %s", name)
		}
		eng.SetVisible(i, true)
	}
	return nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := open(ctx, cmd, args)
	if err != nil {
		return err
	}
	defer s.engine.Close(ctx)
	eng := s.engine

	exprs, _ := cmd.Flags().GetStringArray("expr")
	for _, e := range exprs {
		if _, err := eng.PlotFunction(e); err != nil {
			return fmt.Errorf("%s: %w", e, err)
		}
	}
	positions, err := cursorPositions(cmd)
	if err != nil {
		return err
	}
	for i, x := range positions {
		eng.SetCursor(cursor.Slot(i), x)
	}

	frame := eng.Refresh()
	out := cmd.OutOrStdout()
	if len(positions) > 0 {
		first, second, delta, measure := eng.CursorLabels()
		fmt.Fprintln(out, first, "|", second, "|", delta, measure)
	}
	if d, ok := eng.Diagram(); ok {
		fmt.Fprintln(out, "Threshold:", d.ThresholdText())
	}
	path, _ := cmd.Flags().GetString("out")
	if path == "" {
		printFrame(cmd, eng.Project(), frame)
		return nil
	}
	p := render.NewPlot(frame, s.settings.Output.Width, s.settings.Output.Height)
	p.Logger = s.log
	if err := p.Save(path); err != nil {
		return err
	}
	s.log.Info("图像已保存", "path", path, "series", len(frame.Series)+len(frame.Derived))
	return nil
}

// printFrame 打印绘制摘要
func printFrame(cmd *cobra.Command, project string, f types.Frame) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", project)
	if f.Message != "" {
		fmt.Fprintln(out, f.Message)
		return
	}
	if f.Title != "" {
		fmt.Fprintln(out, f.Title)
	}
	fmt.Fprintf(out, "x: %s  y: %s\n", f.XLabel, f.YLabel)
	for _, s := range f.AllSeries() {
		fmt.Fprintf(out, "  %-16s %s %s %s (%d points)\n", s.Label, s.Color.Hex(), s.Width.Label(), s.Style.Label(), len(s.Y))
	}
}

// cursorPositions 解析 --cursor，保留完整精度
func cursorPositions(cmd *cobra.Command) ([]float64, error) {
	raw, _ := cmd.Flags().GetStringSlice("cursor")
	if len(raw) > 2 {
		return nil, fmt.Errorf("最多两个游标, got %d", len(raw))
	}
	positions := make([]float64, 0, len(raw))
	for _, v := range raw {
		x, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("游标位置 %q: %w", v, err)
		}
		positions = append(positions, x)
	}
	return positions, nil
}
