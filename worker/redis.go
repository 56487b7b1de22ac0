package worker

import (
	"fmt"

	"pavs.com/phenonorm/tasks"
)

type redisTransactions interface {
	getJobTask(redisKey string) (*tasks.JobTask, error)
	onTaskStarted(task *Task) error
	onTaskCancelled(task *Task, errorMessages ...string) error
	onTaskExceededRetries(task *Task, maxRetries int) error
	onTaskFailedWithError(task *Task, err error) error
	onTaskComplete(task *Task) error
	close()
}

type redisClientWrapper struct {
	tasksClient *tasks.Client
}

func (wrapper *redisClientWrapper) close() {
	wrapper.tasksClient.Close()
}

func (wrapper *redisClientWrapper) getJobTask(redisKey string) (*tasks.JobTask, error) {
	return wrapper.tasksClient.Jobs.Get(redisKey)
}

func (wrapper *redisClientWrapper) onTaskStarted(task *Task) error {
	return wrapper.tasksClient.Jobs.Update(task.redisKey, func(jobTask *tasks.JobTask) {
		jobTask.Status = tasks.TaskStatusStarted
		jobTask.Attempts += 1
		jobTask.StartedAt = getFormattedNow()
		jobTask.CompletedAt = nil
	})
}

func (wrapper *redisClientWrapper) onTaskCancelled(task *Task, errorMessages ...string) error {
	return wrapper.tasksClient.Jobs.Update(task.redisKey, func(jobTask *tasks.JobTask) {
		jobTask.Status = tasks.TaskStatusCanceled
		jobTask.StartedAt = getFormattedNow()
		jobTask.CompletedAt = getFormattedNow()
		jobTask.Attempts += 1
		jobTask.ErrorMessages = append(jobTask.ErrorMessages, errorMessages...)
	})
}

func (wrapper *redisClientWrapper) onTaskExceededRetries(task *Task, maxRetries int) error {
	return wrapper.tasksClient.Jobs.Update(task.redisKey, func(jobTask *tasks.JobTask) {
		jobTask.Status = tasks.TaskStatusCompletedFailure
		jobTask.StartedAt = getFormattedNow()
		jobTask.CompletedAt = getFormattedNow()
		jobTask.Attempts += 1
		jobTask.ErrorMessages = append(
			jobTask.ErrorMessages,
			fmt.Sprintf(
				"Task has exceeded retries. (Attempts: %d, max retries: %d )",
				jobTask.Attempts,
				maxRetries,
			),
		)
	})
}

func (wrapper *redisClientWrapper) onTaskFailedWithError(task *Task, err error) error {
	return wrapper.tasksClient.Jobs.Update(task.redisKey, func(jobTask *tasks.JobTask) {
		jobTask.Status = tasks.TaskStatusFailed
		jobTask.CompletedAt = getFormattedNow()
		jobTask.ErrorMessages = append(jobTask.ErrorMessages, err.Error())
	})
}

func (wrapper *redisClientWrapper) onTaskComplete(task *Task) error {
	return wrapper.tasksClient.Jobs.Update(task.redisKey, func(jobTask *tasks.JobTask) {
		if !jobTask.Status.Complete() {
			jobTask.Status = tasks.TaskStatusCompletedSuccess
		}
		jobTask.CompletedAt = getFormattedNow()
		jobTask.ResultsFileKey = getResultsFileKey(task)
	})
}
