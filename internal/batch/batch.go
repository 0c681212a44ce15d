// Package batch 并发地对多个源码缓冲区做词法分析
//
// 每个任务使用独立的 Lexer，任务之间不共享任何可变状态。
package batch

import (
	"context"
	"runtime"
	"sync"

	"go.uber.org/atomic"

	"github.com/tangzhangming/pylex/internal/lexer"
	"github.com/tangzhangming/pylex/internal/token"
)

// MaxWorkers 工作协程数上限
const MaxWorkers = 256

// Job 一个待分析的源码缓冲区
type Job struct {
	Name   string // 文件名，用于诊断
	Source string // 已解码的源码
}

// Result 一个任务的分析结果
type Result struct {
	Job    Job
	Tokens []token.Token
	Err    error
}

// Func 处理单个任务的函数
type Func func(ctx context.Context, job Job) ([]token.Token, error)

// Tokenizer 返回使用指定制表符宽度做词法分析的任务函数
func Tokenizer(tabSize int) Func {
	return func(_ context.Context, job Job) ([]token.Token, error) {
		return lexer.New(job.Source, tabSize, lexer.WithFilename(job.Name)).Tokenize()
	}
}

// ============================================================================
// 工作池
// ============================================================================

// Pool 固定大小的工作池
type Pool struct {
	workers   int
	processed atomic.Int64 // 已完成的任务数
	failed    atomic.Int64 // 失败的任务数
}

// Stats 工作池统计信息
type Stats struct {
	Processed int64
	Failed    int64
}

// NewPool 创建工作池，workers <= 0 时使用 CPU 核数
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}
	return &Pool{workers: workers}
}

// Workers 返回工作协程数
func (p *Pool) Workers() int {
	return p.workers
}

// Run 处理所有任务，结果与 jobs 顺序一致
//
// ctx 取消后尚未开始的任务直接以 ctx.Err() 结束。
func (p *Pool) Run(ctx context.Context, jobs []Job, fn Func) []Result {
	results := make([]Result, len(jobs))
	if len(jobs) == 0 {
		return results
	}

	workers := p.workers
	if workers > len(jobs) {
		workers = len(jobs)
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = p.runOne(ctx, jobs[i], fn)
			}
		}()
	}

	for i := range jobs {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return results
}

// runOne 执行单个任务并更新计数
func (p *Pool) runOne(ctx context.Context, job Job, fn Func) Result {
	res := Result{Job: job}
	if err := ctx.Err(); err != nil {
		res.Err = err
	} else {
		res.Tokens, res.Err = fn(ctx, job)
	}

	p.processed.Inc()
	if res.Err != nil {
		p.failed.Inc()
	}
	return res
}

// Stats 返回统计信息
func (p *Pool) Stats() Stats {
	return Stats{
		Processed: p.processed.Load(),
		Failed:    p.failed.Load(),
	}
}

// Run 使用临时工作池处理任务
func Run(ctx context.Context, jobs []Job, workers int, fn Func) []Result {
	return NewPool(workers).Run(ctx, jobs, fn)
}
