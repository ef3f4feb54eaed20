// Package contextx 提供 context 传值助手：事务句柄、trace_id、request_id
package contextx

import "context"

type contextKey string

const (
	txKey        contextKey = "tx"
	traceIDKey   contextKey = "trace_id"
	requestIDKey contextKey = "request_id"
)

// WithTx 将事务句柄注入 context，仓储层通过 GetTx 取回
func WithTx(ctx context.Context, tx any) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// GetTx 取出 context 中的事务句柄，不存在时返回 nil
func GetTx(ctx context.Context) any {
	if ctx == nil {
		return nil
	}
	return ctx.Value(txKey)
}

// WithTraceID 将 trace_id 注入 context
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceID 取出 context 中的 trace_id
func TraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(traceIDKey).(string); ok {
		return v
	}
	return ""
}

// WithRequestID 将 request_id 注入 context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestID 取出 context 中的 request_id
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}
