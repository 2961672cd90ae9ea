package tasks

import (
	"sync"

	"scrappybara.io/depparse/redis"
)

const DocumentsDB redis.DB = 0

type DocumentTask struct {
	FailedTasks  []string            `json:"failed_tasks"`
	FailedChunks map[string][]string `json:"failed_chunks"`
}

type DocumentTaskCached struct {
	FailedTasks []string `json:"failed_tasks"`
	JobID       string   `json:"job_id"`
	WorkType    string   `json:"work_type"`
}

type DocumentTasks struct {
	client redis.Client
}

func (tasks DocumentTasks) Get(redisKey string) (*DocumentTask, error) {
	var task DocumentTask
	if _, err := tasks.client.GetDocument(redisKey, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (tasks DocumentTasks) GetCached(redisKey string) (*DocumentTaskCached, error) {
	var task DocumentTaskCached
	if _, err := tasks.client.GetDocument(cachedPropertiesKey(redisKey), &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Update changes the document and mirrors its failed tasks into the cached properties.
func (tasks DocumentTasks) Update(redisKey string, updateFunc func(task *DocumentTask)) (err error) {
	releaseLock, err := tasks.client.Lock(redisKey)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = releaseLock()
			return
		}
		err = releaseLock()
	}()

	var task DocumentTask
	var cached DocumentTaskCached
	raw, err := tasks.client.GetDocument(redisKey, &task)
	if err != nil {
		return err
	}
	rawCached, err := tasks.client.GetDocument(cachedPropertiesKey(redisKey), &cached)
	if err != nil {
		return err
	}
	if task.FailedChunks == nil {
		task.FailedChunks = make(map[string][]string)
	}
	updateFunc(&task)
	cached.FailedTasks = task.FailedTasks

	merged, err := redis.MergeDocument(raw, &task)
	if err != nil {
		return err
	}
	mergedCached, err := redis.MergeDocument(rawCached, &cached)
	if err != nil {
		return err
	}

	errChan := make(chan error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		errChan <- tasks.client.Save(redisKey, merged)
		wg.Done()
	}()
	go func() {
		errChan <- tasks.client.Save(cachedPropertiesKey(redisKey), mergedCached)
		wg.Done()
	}()
	wg.Wait()
	close(errChan)
	for err = range errChan {
		if err != nil {
			return err
		}
	}
	return nil
}
