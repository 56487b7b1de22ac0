package tasks

import (
	"pavs.com/phenonorm/redis"
)

type Client struct {
	Jobs JobTasks
}

// NewClient is the preferred way of working with job task state.
func NewClient() (Client, error) {
	jobsRedisClient, err := redis.NewClient(JobsDB)
	if err != nil {
		return Client{}, err
	}
	return Client{
		Jobs: JobTasks{client: jobsRedisClient},
	}, nil
}

func (client *Client) Close() {
	_ = client.Jobs.client.Close()
}
