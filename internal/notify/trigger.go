package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gigmatrix/internal/config"
	"gigmatrix/internal/report"
	"gigmatrix/internal/service"
)

// Trigger 订阅触发主题，收到消息即运行一次对账，并把文本报告发回报告主题
// 载荷可以为空（对账当前年份）或 {"year": 2027}
type Trigger struct {
	cfg       *config.Config
	broker    Broker
	reconcile service.ReconcileService
	clock     func() time.Time
	logger    *zap.Logger
}

// NewTrigger 创建对账触发器
func NewTrigger(cfg *config.Config, broker Broker, reconcile service.ReconcileService, logger *zap.Logger) *Trigger {
	return &Trigger{
		cfg:       cfg,
		broker:    broker,
		reconcile: reconcile,
		clock:     time.Now,
		logger:    logger,
	}
}

// Start 订阅触发主题并阻塞到上下文取消
func (t *Trigger) Start(ctx context.Context) error {
	topic := t.cfg.MQTT.TriggerTopic
	if topic == "" {
		return fmt.Errorf("MQTT trigger topic not configured")
	}

	if err := t.broker.Subscribe(topic, 1, t.handleMessage); err != nil {
		return fmt.Errorf("failed to subscribe to trigger topic: %w", err)
	}

	t.logger.Info("MQTT check trigger started",
		zap.String("trigger_topic", topic),
		zap.String("report_topic", t.cfg.MQTT.ReportTopic),
	)

	<-ctx.Done()
	return nil
}

// Stop 取消订阅
func (t *Trigger) Stop(ctx context.Context) error {
	if topic := t.cfg.MQTT.TriggerTopic; topic != "" {
		if err := t.broker.Unsubscribe(topic); err != nil {
			t.logger.Error("Failed to unsubscribe", zap.Error(err))
		}
	}

	t.logger.Info("MQTT check trigger stopped")
	return nil
}

// triggerRequest 触发载荷，所有字段可选
type triggerRequest struct {
	Year int `json:"year"`
}

// handleMessage 处理一条触发消息
// 载荷解析失败不算致命，退回当前年份继续对账
func (t *Trigger) handleMessage(topic string, payload []byte) error {
	year := t.clock().Year()
	if trimmed := bytes.TrimSpace(payload); len(trimmed) > 0 {
		var req triggerRequest
		if err := json.Unmarshal(trimmed, &req); err != nil {
			t.logger.Warn("Ignoring malformed trigger payload",
				zap.String("topic", topic),
				zap.Error(err),
			)
		} else if req.Year > 0 {
			year = req.Year
		}
	}

	t.logger.Info("Comparison triggered over MQTT", zap.Int("year", year))

	rep, err := t.reconcile.Compare(context.Background(), year)
	if err != nil {
		return fmt.Errorf("triggered comparison failed: %w", err)
	}

	text := report.Comparison(rep)
	if err := t.broker.Publish(t.cfg.MQTT.ReportTopic, 1, false, []byte(text)); err != nil {
		return fmt.Errorf("failed to publish comparison report: %w", err)
	}

	t.logger.Info("Published comparison report",
		zap.String("run_id", rep.RunID),
		zap.String("topic", t.cfg.MQTT.ReportTopic),
		zap.Int("discrepancies", len(rep.Discrepancies)),
	)

	return nil
}
