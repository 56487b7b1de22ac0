package worker

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
	"pavs.com/phenonorm/merge"
	"pavs.com/phenonorm/sources"
	"pavs.com/phenonorm/tasks"
	"pavs.com/phenonorm/utils"
)

type Message struct {
	WorkType string `json:"work_type"`
	RedisKey string `json:"redis_key"`
	Sender   string `json:"sender"`
	Version  string `json:"version"`
}

type Task struct {
	delivery *amqp.Delivery
	jobTask  *tasks.JobTask
	message  *Message
	redisKey string
	pnLogger *zerolog.Logger
}

func (worker *Worker) processMessage(delivery *amqp.Delivery) {
	task, err := worker.createTask(delivery)
	rejectLogger := worker.pnLogger.With().Str("message_id", delivery.MessageId).Logger()
	if err != nil {
		worker.pnLogger.Err(err).
			Str("message_id", delivery.MessageId).
			Str("tid", string(delivery.Body)).
			Msg("Failed to create task for delivery")
		worker.rmq.rejectDelivery(delivery, &rejectLogger)
		return
	}
	if err = worker.processTask(task); err != nil {
		worker.rmq.rejectDelivery(delivery, &rejectLogger)
		return
	}
	if err = worker.rmq.pingCollector(task, *task.message); err != nil {
		task.pnLogger.Err(err).Msg("Got error while sending message to collector queue")
		worker.rmq.rejectDelivery(delivery, &rejectLogger)
		return
	}
	if err = worker.rmq.acknowledgeDelivery(delivery); err != nil {
		task.pnLogger.Err(err).Msg("Failed to acknowledge delivery")
	}
	task.pnLogger.Info().Msg("Finished processing RMQ message")
}

func (worker *Worker) createTask(delivery *amqp.Delivery) (*Task, error) {
	var message Message
	err := json.Unmarshal(delivery.Body, &message)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal message, got error %w", err)
	}
	jobTask, err := worker.redis.getJobTask(message.RedisKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query job task for message, got error %w", err)
	}
	taskLogger := worker.pnLogger.With().Str("tid", message.RedisKey).Logger()
	task := Task{
		delivery: delivery,
		jobTask:  jobTask,
		redisKey: message.RedisKey,
		message:  &message,
		pnLogger: &taskLogger,
	}
	return &task, nil
}

func (worker *Worker) processTask(task *Task) error {
	shouldPerform, err := worker.shouldPerformTask(task)
	if err != nil {
		task.pnLogger.Err(err).
			Msg("Got error while trying to decide whether to run task")
		return err
	}
	if !shouldPerform {
		return nil
	}
	if err = worker.redis.onTaskStarted(task); err != nil {
		task.pnLogger.Err(err).Msg("Failed to update task info")
		return fmt.Errorf("failed to update job task: %w", err)
	}
	if err = worker.runConversion(task); err != nil {
		task.pnLogger.Err(err).Msg("Got error while running conversion")
		if err = worker.redis.onTaskFailedWithError(task, err); err != nil {
			return err
		}
		return nil
	}
	task.pnLogger.Info().Msg("Saved results, marking task as complete")
	if err = worker.redis.onTaskComplete(task); err != nil {
		task.pnLogger.Err(err).Msg("Got error while trying to mark task as complete")
		return err
	}
	return nil
}

// runConversion pulls each configured source's payload named by the job,
// runs the converter over the combined rows and uploads the canonical
// records.
func (worker *Worker) runConversion(task *Task) (err error) {
	defer utils.RecoverWithError(&err)
	task.pnLogger.Info().Msgf("Processing message from RMQ, attempt # %d", task.jobTask.Attempts)

	var mapped []merge.MappedRecord
	for _, cfg := range worker.sources {
		key, ok := task.jobTask.SourceFileKeys[cfg.Name]
		if !ok {
			task.pnLogger.Info().Msgf("Job carries no payload for source %s, skipping", cfg.Name)
			continue
		}
		data, err := worker.s3.fetchSourcePayload(key)
		if err != nil {
			task.pnLogger.Err(err).Caller().Msg("Could not fetch source payload from s3")
			return fmt.Errorf("failed to fetch source %s from s3: %w", cfg.Name, err)
		}
		rows, err := sources.ReadFrom(cfg, bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("failed to read source %s: %w", cfg.Name, err)
		}
		for _, row := range rows {
			mapped = append(mapped, merge.ApplyFieldMap(cfg, row))
		}
	}
	if len(mapped) == 0 {
		return fmt.Errorf("job references no readable source payloads")
	}

	records := worker.converter.Convert(mapped)
	result, err := json.Marshal(records)
	if err != nil {
		return err
	}
	task.pnLogger.Info().Msg("Finished conversion, saving results to s3")
	if err = worker.s3.saveResultsFile(task, result); err != nil {
		task.pnLogger.Err(err).Msg("Got error while trying to save results")
		return err
	}
	return nil
}

func (worker *Worker) shouldPerformTask(task *Task) (bool, error) {
	taskLogger := task.pnLogger

	if task.jobTask.Status.Complete() {
		taskLogger.Info().Msg("Task is already done. (might indicate issue acking message with RMQ). Sending back to collector.")
		return false, nil
	}
	if task.jobTask.UserCanceled {
		taskLogger.Info().Msg("Job was canceled, no need to perform this task. Sending back to collector.")
		err := worker.redis.onTaskCancelled(task)
		return false, err
	}
	if task.jobTask.Attempts >= worker.config.TaskMaxRetries {
		taskLogger.Info().Msg("Conversion task has exceeded retries. Sending back to collector.")
		err := worker.redis.onTaskExceededRetries(task, worker.config.TaskMaxRetries)
		return false, err
	}
	return true, nil
}
