package worker

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	kafka_impl "file-ingest/internal/broker/kafka"
	"file-ingest/internal/config"
	"file-ingest/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/segmentio/kafka-go"
	"github.com/wb-go/wbf/zlog"
)

// Worker is the downstream side of the pipeline: it consumes InputSource
// events published on batch completion and hands them to processing.
type Worker struct {
	cfg      *config.Config
	logger   *zlog.Zerolog
	consumer *kafka_impl.ConsumerClient
	validate *validator.Validate
}

func NewWorker(cfg *config.Config, logger *zlog.Zerolog) (*Worker, error) {
	return &Worker{
		cfg:      cfg,
		logger:   logger,
		consumer: kafka_impl.NewConsumerClient(cfg),
		validate: validator.New(),
	}, nil
}

func (w *Worker) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages := make(chan kafka.Message, w.cfg.Worker.Concurrency)

	go w.consumer.StartConsuming(ctx, messages, w.cfg.DefaultRetryStrategy())

	for i := 0; i < w.cfg.Worker.Concurrency; i++ {
		go w.worker(ctx, i, messages)
	}

	w.logger.Info().Int("concurrency", w.cfg.Worker.Concurrency).Msg("Worker started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	w.logger.Info().Str("signal", sig.String()).Msg("Received signal, shutting down")
	cancel()

	return w.consumer.Close()
}

func (w *Worker) worker(ctx context.Context, id int, messages <-chan kafka.Message) {
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Int("worker_id", id).Msg("Worker stopped")
			return
		case msg := <-messages:
			w.processMessage(ctx, id, msg)
		}
	}
}

func (w *Worker) processMessage(ctx context.Context, workerID int, msg kafka.Message) {
	var src domain.InputSource
	if err := json.Unmarshal(msg.Value, &src); err != nil {
		w.logger.Error().Err(err).Int("worker_id", workerID).Msg("Failed to unmarshal input source")
		return
	}

	if err := w.validate.Struct(&src); err != nil {
		w.logger.Error().Err(err).Int("worker_id", workerID).Str("url", src.URL).Msg("Malformed input source")
		return
	}

	w.logger.Info().
		Int("worker_id", workerID).
		Str("url", src.URL).
		Str("filename", src.Filename).
		Int64("size", src.Size).
		Str("content_type", src.ContentType).
		Msg("Input source received")

	if err := w.consumer.Commit(ctx, msg); err != nil {
		w.logger.Error().Err(err).Int("worker_id", workerID).Msg("Failed to commit offset")
	}
}
