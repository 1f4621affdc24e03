package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/gonewx/spritebuddy/pkg/config"
	"github.com/gonewx/spritebuddy/pkg/keyframe"
	"github.com/quasilyte/gdata/v2"
)

const appName = "spritebuddy"

func main() {
	durationPtr := flag.Float64("duration", -1, "默认分段时长（秒），-1 表示使用已保存的默认值")
	timingPtr := flag.String("timing", "", "默认时间曲线: linear, ease_in, ease_out, ease_in_ease_out")
	trackPtr := flag.String("track", "", "Reanim 文件只处理指定轨道（默认全部部件轨道）")
	workersPtr := flag.Int("workers", 0, "并发加载的文件数，0 表示使用已保存的默认值")
	simulatePtr := flag.Int("simulate", 0, "按给定帧率模拟播放并输出最终节点状态，0 表示不模拟")
	watchPtr := flag.Bool("watch", false, "监听输入文件所在目录，文件变化时重新输出")
	saveDefaultsPtr := flag.Bool("save-defaults", false, "把本次的 -duration / -timing / -workers 保存为默认值")
	verbosePtr := flag.Bool("verbose", false, "模拟时输出每个 Batch 的开始和结束")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "用法: %s [选项] <文件.yaml|文件.reanim>...\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	// gdata 失败时降级为仅内存设置
	gdataManager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[keyframe_actions] Warning: gdata unavailable: %v", err)
		gdataManager = nil
	}
	settings := config.NewSettingsManager(gdataManager)

	if *durationPtr >= 0 {
		settings.SetDefaultDuration(*durationPtr)
	}
	if *timingPtr != "" {
		mode, err := keyframe.ParseTimingMode(*timingPtr)
		if err != nil {
			log.Fatalf("无效的 -timing: %v", err)
		}
		settings.SetDefaultTimingMode(mode)
	}
	if *workersPtr > 0 {
		settings.SetWorkers(*workersPtr)
	}

	if *saveDefaultsPtr {
		if err := settings.Save(); err != nil {
			log.Fatalf("保存默认值失败: %v", err)
		}
		fmt.Println("默认值已保存")
	}

	paths := flag.Args()
	if len(paths) == 0 {
		if *saveDefaultsPtr {
			return
		}
		flag.Usage()
		os.Exit(1)
	}

	prefs := settings.GetPreferences()
	opts := options{
		duration: prefs.Duration(),
		timing:   prefs.TimingMode(),
		track:    *trackPtr,
		workers:  prefs.Workers,
		simulate: *simulatePtr,
		verbose:  *verbosePtr,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	docs, err := loadAll(ctx, paths, opts)
	if err != nil {
		log.Fatalf("加载失败: %v", err)
	}
	for _, doc := range docs {
		printDocument(os.Stdout, doc, opts)
	}
	log.Printf("[keyframe_actions] Processed %d file(s) in %v", len(docs), time.Since(start))

	if *watchPtr {
		if err := watch(ctx, paths, opts); err != nil {
			log.Fatalf("监听失败: %v", err)
		}
	}
}

// watch 在输入文件变化时重新加载并输出该文件
func watch(ctx context.Context, paths []string, opts options) error {
	inputs := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		inputs[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	dirList := make([]string, 0, len(dirs))
	for d := range dirs {
		dirList = append(dirList, d)
	}

	w, err := config.NewWatcher(dirList...)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	fmt.Fprintln(os.Stderr, "监听文件变化中，按 Ctrl+C 退出")
	for {
		select {
		case <-ctx.Done():
			return nil
		case name, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !inputs[name] {
				continue
			}
			doc, err := loadDocument(name, opts)
			if err != nil {
				fmt.Fprintf(os.Stderr, "重新加载 %s 失败: %v\n", name, err)
				continue
			}
			printDocument(os.Stdout, doc, opts)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("[keyframe_actions] Watcher error: %v", err)
		}
	}
}
