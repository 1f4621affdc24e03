package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/gonewx/spritebuddy/internal/reanim"
	"github.com/gonewx/spritebuddy/pkg/action"
	"github.com/gonewx/spritebuddy/pkg/components"
	"github.com/gonewx/spritebuddy/pkg/config"
	"github.com/gonewx/spritebuddy/pkg/ecs"
	"github.com/gonewx/spritebuddy/pkg/keyframe"
	"github.com/gonewx/spritebuddy/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/sync/errgroup"
)

// options 命令行选项解析后的结果
type options struct {
	duration time.Duration
	timing   keyframe.TimingMode
	track    string
	workers  int
	simulate int // 模拟帧率，0 表示不模拟
	verbose  bool
}

// sequence 同一节点的一串关键帧
type sequence struct {
	name      string
	keyframes []keyframe.Keyframe
	durations []time.Duration // durations[i] 是以 keyframes[i] 结尾的分段时长
}

// document 一个输入文件解析出的全部序列
type document struct {
	source    string
	sequences []sequence
}

// loadDocument 按扩展名加载 YAML 文档或 Reanim 文件
func loadDocument(path string, opts options) (*document, error) {
	switch {
	case config.IsReanimFile(path):
		return loadReanimDocument(path, opts.track)
	case config.IsYAMLFile(path):
		return loadYAMLDocument(path, opts)
	}
	return nil, fmt.Errorf("unsupported file type '%s' (expected .yaml, .yml or .reanim)", path)
}

func loadYAMLDocument(path string, opts options) (*document, error) {
	cfg, err := config.LoadKeyframeConfig(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyDefaults(opts.duration, opts.timing)

	kfs, err := cfg.Keyframes()
	if err != nil {
		return nil, fmt.Errorf("failed to expand keyframes from '%s': %w", path, err)
	}

	seq := sequence{name: cfg.Name, keyframes: kfs, durations: make([]time.Duration, len(kfs))}
	for i := range kfs {
		seq.durations[i] = cfg.SegmentDuration(i)
	}
	return &document{source: path, sequences: []sequence{seq}}, nil
}

func loadReanimDocument(path, track string) (*document, error) {
	data, err := reanim.ParseReanimFile(path)
	if err != nil {
		return nil, err
	}

	names := data.PartTracks()
	if track != "" {
		if _, ok := data.FindTrack(track); !ok {
			return nil, fmt.Errorf("track '%s' not found in '%s'", track, path)
		}
		names = []string{track}
	}

	frame := reanim.FrameDuration(data.FPS)
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	doc := &document{source: path}
	for _, name := range names {
		t, _ := data.FindTrack(name)
		kfs := reanim.TrackKeyframes(t)
		if len(kfs) == 0 {
			continue
		}
		seq := sequence{
			name:      base + "/" + name,
			keyframes: kfs,
			durations: make([]time.Duration, len(kfs)),
		}
		for i := range seq.durations {
			seq.durations[i] = frame
		}
		doc.sequences = append(doc.sequences, seq)
	}
	return doc, nil
}

// batches 为每个关键帧生成相对前一帧的过渡集合
func (s *sequence) batches() []action.Batch {
	out := make([]action.Batch, len(s.keyframes))
	for i := range s.keyframes {
		var prev *keyframe.Keyframe
		if i > 0 {
			prev = &s.keyframes[i-1]
		}
		out[i] = action.Build(s.keyframes[i], prev, s.durations[i])
	}
	return out
}

// player 一个节点实体的播放进度
type player struct {
	index   int // 在 document.sequences 中的下标
	batches []action.Batch
	next    int
}

// simulateDocument 在同一个 ActionSystem 上同时播放文档中的所有序列，返回每个序列的最终节点状态
//
// 每个序列对应一个节点实体，以首帧为初始状态；上一个 Batch 结束后才下发下一个。
// 序列播放完毕后实体被销毁，所有实体销毁后模拟结束。
func simulateDocument(doc *document, fps int, verbose bool) []components.NodeComponent {
	em := ecs.NewEntityManager()
	sys := systems.NewActionSystem(em)
	sys.Verbose = verbose

	players := make(map[ecs.EntityID]*player, len(doc.sequences))
	for i := range doc.sequences {
		seq := &doc.sequences[i]
		id := em.CreateEntity()
		ecs.AddComponent(em, id, components.NewNodeComponent(seq.keyframes[0]))
		players[id] = &player{index: i, batches: seq.batches()}
	}

	finals := make([]components.NodeComponent, len(doc.sequences))
	step := 1.0 / float64(fps)
	clock := 0.0
	for em.EntityCount() > 0 {
		for _, id := range ecs.GetEntitiesWith1[*components.NodeComponent](em) {
			if sys.IsRunning(id) {
				continue
			}
			p := players[id]
			if p.next < len(p.batches) {
				ecs.AddComponent(em, id, &components.ActionCommandComponent{Batch: p.batches[p.next], Timestamp: clock})
				p.next++
				continue
			}
			node, _ := ecs.GetComponent[*components.NodeComponent](em, id)
			finals[p.index] = node.Snapshot()
			em.DestroyEntity(id)
		}
		em.RemoveMarkedEntities()

		sys.Update(step)
		clock += step
	}
	return finals
}

// drawSummary 把节点状态映射为 ebiten 绘制参数并格式化输出
//
// 以节点自身尺寸作为图片尺寸（尺寸为零时按 1x1），输出中心点落点、变换矩阵的线性部分和颜色系数。
func drawSummary(node *components.NodeComponent) string {
	imgW := max(1, int(math.Round(node.Size.Width)))
	imgH := max(1, int(math.Round(node.Size.Height)))

	op := &ebiten.DrawImageOptions{}
	systems.ApplyNodeDrawOptions(node, imgW, imgH, op)

	cx, cy := op.GeoM.Apply(float64(imgW)/2, float64(imgH)/2)
	return fmt.Sprintf("center=(%.2f, %.2f) geom=[%.3f %.3f; %.3f %.3f] colorscale=(%.3f, %.3f, %.3f, %.3f)",
		cx, cy,
		op.GeoM.Element(0, 0), op.GeoM.Element(0, 1), op.GeoM.Element(1, 0), op.GeoM.Element(1, 1),
		op.ColorScale.R(), op.ColorScale.G(), op.ColorScale.B(), op.ColorScale.A())
}

// loadAll 并发加载所有文件，结果按输入顺序返回
func loadAll(ctx context.Context, paths []string, opts options) ([]*document, error) {
	docs := make([]*document, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := loadDocument(path, opts)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// printDocument 输出文档中每个序列的过渡集合
func printDocument(w io.Writer, doc *document, opts options) {
	fmt.Fprintf(w, "== %s\n", doc.source)

	var finals []components.NodeComponent
	if opts.simulate > 0 {
		finals = simulateDocument(doc, opts.simulate, opts.verbose)
	}
	for i := range doc.sequences {
		seq := &doc.sequences[i]
		fmt.Fprintf(w, "-- %s (%d keyframes)\n", seq.name, len(seq.keyframes))
		for j, b := range seq.batches() {
			fmt.Fprintf(w, "  #%d %v\n", j, b)
		}
		if finals != nil {
			final := &finals[i]
			fmt.Fprintf(w, "  final: pos=(%.2f, %.2f) rot=%.3f size=%gx%g scale=(%g, %g) alpha=%.2f tint=%v@%.2f\n",
				final.Position.X, final.Position.Y, final.Rotation,
				final.Size.Width, final.Size.Height, final.Scale.X, final.Scale.Y,
				final.Alpha, final.Color, final.ColorBlendFactor)
			fmt.Fprintf(w, "  draw: %s\n", drawSummary(final))
		}
	}
}
