package sink

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/hatlonely/datafaker/log"
	"github.com/hatlonely/datafaker/schema"
)

// ObservableSinkOptions ObservableSink 构造选项
type ObservableSinkOptions struct {
	// Sink 被包装的输出端，和 Type/Options 二选一，优先使用 Sink
	Sink Sink `cfg:"-"`

	// Type/Options 通过注册表构造被包装输出端
	Type    string `cfg:"type"`
	Options any    `cfg:"options"`

	// Logger 日志记录器，为空时使用默认 Logger
	Logger log.Logger `cfg:"-"`

	// EnableMetrics 是否启用指标收集
	EnableMetrics bool `cfg:"enableMetrics"`

	// EnableLogging 是否启用日志记录
	EnableLogging bool `cfg:"enableLogging"`

	// EnableTracing 是否启用分布式追踪
	EnableTracing bool `cfg:"enableTracing"`

	// Name 组件名称标识，用于所有观测维度
	// - Metrics: 作为指标名前缀
	// - Logging: 作为 component 字段值
	// - Tracing: 作为 span 的 component 属性
	Name string `cfg:"name"`
}

// ObservableMetrics 封装 prometheus 指标
type ObservableMetrics struct {
	writeCounter  *prometheus.CounterVec
	writeDuration *prometheus.HistogramVec
	rowCounter    prometheus.Counter
	cellCounter   prometheus.Counter
	nullCounter   prometheus.Counter
}

// NewObservableMetrics 创建指标收集器
func NewObservableMetrics(name string) *ObservableMetrics {
	metrics := &ObservableMetrics{
		writeCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: name + "_writes_total",
				Help: "Total number of sink write operations",
			},
			[]string{"status"},
		),
		writeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    name + "_write_duration_seconds",
				Help:    "Duration of sink write operations in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"status"},
		),
		rowCounter: prometheus.NewCounter(prometheus.CounterOpts{
			Name: name + "_rows_total",
			Help: "Total number of rows written",
		}),
		cellCounter: prometheus.NewCounter(prometheus.CounterOpts{
			Name: name + "_cells_total",
			Help: "Total number of cells written",
		}),
		nullCounter: prometheus.NewCounter(prometheus.CounterOpts{
			Name: name + "_null_cells_total",
			Help: "Total number of null cells written",
		}),
	}

	// 注册到默认 prometheus registry
	prometheus.MustRegister(
		metrics.writeCounter,
		metrics.writeDuration,
		metrics.rowCounter,
		metrics.cellCounter,
		metrics.nullCounter,
	)

	return metrics
}

// ObservableSink 装饰器，为任何 Sink 添加观测能力
type ObservableSink struct {
	sink Sink

	logger        log.Logger
	metrics       *ObservableMetrics
	tracer        trace.Tracer
	name          string
	enableMetrics bool
	enableLogging bool
	enableTracing bool
}

// NewObservableSinkWithOptions 创建带观测能力的输出端
func NewObservableSinkWithOptions(options *ObservableSinkOptions) (*ObservableSink, error) {
	if options == nil {
		return nil, errors.New("options is nil")
	}

	name := options.Name
	if name == "" {
		name = "sink"
	}

	inner := options.Sink
	if inner == nil {
		if options.Type == "" {
			return nil, errors.New("either sink or type is required")
		}
		s, err := NewSinkWithOptions(options.Type, options.Options)
		if err != nil {
			return nil, errors.WithMessage(err, "failed to create underlying sink")
		}
		inner = s
	}

	obs := &ObservableSink{
		sink:          inner,
		name:          name,
		enableMetrics: options.EnableMetrics,
		enableLogging: options.EnableLogging,
		enableTracing: options.EnableTracing,
	}

	if options.EnableLogging {
		logger := options.Logger
		if logger == nil {
			logger = log.Default()
		}
		obs.logger = logger.WithGroup("observableSink")
	}

	if options.EnableMetrics {
		obs.metrics = NewObservableMetrics(name)
	}

	if options.EnableTracing {
		obs.tracer = otel.Tracer(fmt.Sprintf("sink.%s", name))
	}

	return obs, nil
}

// Write 写出一张表，并记录行数、单元格数、空值数和耗时
func (obs *ObservableSink) Write(ctx context.Context, table *schema.Table) error {
	numRows := table.NumRows()

	return obs.observeOperation(ctx, "write", numRows, func(ctx context.Context) error {
		err := obs.sink.Write(ctx, table)
		if err == nil && obs.enableMetrics && obs.metrics != nil {
			nulls := 0
			for _, row := range table.Rows() {
				for _, cell := range row {
					if cell == nil {
						nulls++
					}
				}
			}
			obs.metrics.rowCounter.Add(float64(numRows))
			obs.metrics.cellCounter.Add(float64(numRows * table.NumColumns()))
			obs.metrics.nullCounter.Add(float64(nulls))
		}
		return err
	})
}

// Close 关闭被包装的输出端
func (obs *ObservableSink) Close() error {
	return obs.observeOperation(context.Background(), "close", 0, func(ctx context.Context) error {
		return obs.sink.Close()
	})
}

// observeOperation 统一的操作观测逻辑
func (obs *ObservableSink) observeOperation(ctx context.Context, operation string, numRows int, fn func(context.Context) error) error {
	start := time.Now()

	var span trace.Span
	if obs.enableTracing && obs.tracer != nil {
		ctx, span = obs.tracer.Start(ctx, fmt.Sprintf("sink.%s", operation),
			trace.WithAttributes(
				attribute.String("component", obs.name),
				attribute.String("operation", operation),
				attribute.Int("rows", numRows),
			),
		)
		defer span.End()
	}

	err := fn(ctx)
	duration := time.Since(start)

	if obs.enableTracing && span != nil {
		span.SetAttributes(
			attribute.Int64("duration_ms", duration.Milliseconds()),
		)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			span.RecordError(err)
		} else {
			span.SetStatus(codes.Ok, "")
		}
	}

	if obs.enableMetrics && obs.metrics != nil {
		status := "success"
		if err != nil {
			status = "error"
		}
		obs.metrics.writeCounter.WithLabelValues(status).Inc()
		obs.metrics.writeDuration.WithLabelValues(status).Observe(duration.Seconds())
	}

	if obs.enableLogging && obs.logger != nil {
		if err != nil {
			obs.logger.ErrorContext(ctx, "sink operation failed",
				"component", obs.name,
				"operation", operation,
				"rows", numRows,
				"duration_ms", duration.Milliseconds(),
				"error", err.Error(),
			)
		} else {
			obs.logger.InfoContext(ctx, "sink operation completed",
				"component", obs.name,
				"operation", operation,
				"rows", numRows,
				"duration_ms", duration.Milliseconds(),
			)
		}
	}

	return err
}
