package tasks

import (
	"pavs.com/phenonorm/redis"
)

const JobsDB redis.DB = 0

type TaskStatus string

const (
	TaskStatusProcessing       TaskStatus = "processing"
	TaskStatusSubmitted        TaskStatus = "submitted"
	TaskStatusStarted          TaskStatus = "started"
	TaskStatusFailed           TaskStatus = "failed"
	TaskStatusCompletedSuccess TaskStatus = "completed - success"
	TaskStatusCompletedFailure TaskStatus = "completed - failure"
	TaskStatusCanceled         TaskStatus = "canceled"
)

func (s TaskStatus) Complete() bool {
	return s == TaskStatusCompletedSuccess || s == TaskStatusCompletedFailure || s == TaskStatusCanceled
}

func (s TaskStatus) Submitted() bool {
	return s == TaskStatusSubmitted || s == TaskStatusStarted || s == TaskStatusProcessing
}

// JobTask is the shared state of one conversion job. SourceFileKeys maps a
// configured source name to the object-storage key holding that source's
// payload; ResultsFileKey is filled in when the job completes.
type JobTask struct {
	JobID          string            `json:"job_id"`
	UserCanceled   bool              `json:"user_canceled"`
	SourceFileKeys map[string]string `json:"source_file_keys"`
	ResultsFileKey string            `json:"results_file_key"`
	StartedAt      *string           `json:"started_at"`
	CompletedAt    *string           `json:"completed_at"`
	Attempts       int               `json:"attempts"`
	Status         TaskStatus        `json:"status"`
	ErrorMessages  []string          `json:"error_messages"`
}

type JobTasks struct {
	client redis.Client
}

func (tasks JobTasks) Get(redisKey string) (*JobTask, error) {
	var task JobTask
	err := tasks.client.GetDocument(redisKey, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (tasks JobTasks) Update(redisKey string, updateFunc func(task *JobTask)) error {
	var task JobTask
	return tasks.client.UpdateDocument(redisKey, &task, func() {
		updateFunc(&task)
	})
}
