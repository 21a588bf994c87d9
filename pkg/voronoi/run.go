package voronoi

import (
	"runtime"
	"sort"
	"sync"

	"github.com/0x0FACED/go-gauge/pkg/logger"
	"go.uber.org/zap"
)

// Result is what Compute hands to the diagram assembler and to renderers.
type Result struct {
	Gauge       Quad
	Sites       []Vertex
	TwoSite     []Segment
	ThreeSite   []Segment
	Diagnostics []Diagnostic
}

// Chosen returns the three-site bisector points.
func (r *Result) Chosen() []Segment {
	var res []Segment
	for _, s := range r.ThreeSite {
		if s.Role.IsChosenPoint() {
			res = append(res, s)
		}
	}
	return res
}

type options struct {
	log     *logger.ZapLogger
	workers int
}

type Option func(*options)

func WithLogger(l *logger.ZapLogger) Option {
	return func(o *options) { o.log = l }
}

// WithWorkers bounds the goroutines used per phase; n < 1 means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// Compute runs the two-site solver for every pair of sites and then, once all
// pairs are done, the three-site solver for every triple. Results come out in
// pair and triple order whatever the number of workers.
func Compute(q Quad, sites []Vertex, opts ...Option) (*Result, error) {
	o := options{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.NewNop()
	}
	if o.workers < 1 {
		o.workers = runtime.GOMAXPROCS(0)
	}

	if !q.Valid() {
		return nil, configErrorf("gauge was not built with NewQuad")
	}

	o.log.Info("[run] computation started", zap.Int("sites", len(sites)), zap.Int("workers", o.workers))

	// копия, чтобы не трогать слайс вызывающего
	sorted := append([]Vertex(nil), sites...)
	sort.Sort(verticesByXY{sorted})
	uniq, dropped := uniqueVertices(sorted)
	for _, d := range dropped {
		o.log.Error("[run] duplicate site dropped", zap.Stringer("site", d))
	}
	if len(uniq) < 2 {
		return nil, configErrorf("need at least 2 distinct sites, got %d", len(uniq))
	}

	res := &Result{Gauge: q, Sites: uniq}

	// фаза 1: все пары
	var pairs [][2]int
	for i := 0; i < len(uniq); i++ {
		for j := i + 1; j < len(uniq); j++ {
			pairs = append(pairs, [2]int{i, j})
		}
	}
	res.TwoSite, res.Diagnostics = runPhase(len(pairs), o.workers, func(n int) ([]Segment, []Diagnostic) {
		p := pairs[n]
		return TwoSite(q, uniq[p[0]], uniq[p[1]], o.log)
	})
	o.log.Info("[run] two-site phase done", zap.Int("pairs", len(pairs)), zap.Int("segments", len(res.TwoSite)))

	if len(uniq) < 3 {
		return res, nil
	}

	// фаза 2: тройки, двухточечные результаты уже только читаются
	ix := NewPairIndex(res.TwoSite)
	var triples [][3]int
	for i := 0; i < len(uniq); i++ {
		for j := i + 1; j < len(uniq); j++ {
			for k := j + 1; k < len(uniq); k++ {
				triples = append(triples, [3]int{i, j, k})
			}
		}
	}
	segs, diags := runPhase(len(triples), o.workers, func(n int) ([]Segment, []Diagnostic) {
		t := triples[n]
		return ThreeSite(q, uniq[t[0]], uniq[t[1]], uniq[t[2]], ix, o.log)
	})
	res.ThreeSite = segs
	res.Diagnostics = append(res.Diagnostics, diags...)

	o.log.Info("[run] three-site phase done", zap.Int("triples", len(triples)),
		zap.Int("segments", len(res.ThreeSite)), zap.Int("diagnostics", len(res.Diagnostics)))
	return res, nil
}

type jobResult struct {
	segs  []Segment
	diags []Diagnostic
}

// runPhase runs job for 0..n-1 on a bounded set of goroutines. Every job
// writes its own slot; slots are concatenated in order after the join.
func runPhase(n, workers int, job func(i int) ([]Segment, []Diagnostic)) ([]Segment, []Diagnostic) {
	slots := make([]jobResult, n)
	jobs := make(chan int)

	if workers > n {
		workers = n
	}
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				segs, diags := job(i)
				slots[i] = jobResult{segs: segs, diags: diags}
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var segs []Segment
	var diags []Diagnostic
	for _, s := range slots {
		segs = append(segs, s.segs...)
		diags = append(diags, s.diags...)
	}
	return segs, diags
}
