package worker

import (
	"scrappybara.io/depparse/s3client"
)

type s3Transactions interface {
	saveResultsFile(task *Task, result []byte) error
	getTokens(task *Task) ([]byte, error)
	close()
}

type s3ClientWrapper struct {
	s3Client *s3client.Client
}

func (wrapper *s3ClientWrapper) close() {
	wrapper.s3Client.Close()
}

func (wrapper *s3ClientWrapper) saveResultsFile(task *Task, result []byte) error {
	_, err := wrapper.s3Client.Upload(result, getResultsFileKey(task))
	return err
}

func (wrapper *s3ClientWrapper) getTokens(task *Task) ([]byte, error) {
	return wrapper.s3Client.Download(task.chunkTask.TokensFileKey)
}
