package worker

import (
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrappybara.io/depparse/logger"
	"scrappybara.io/depparse/pipeline"
	"scrappybara.io/depparse/tasks"
)

const deliveryBody = `{"work_type": "parse", "redis_key": "chunk-1", "sender": "sequencer", "version": "1"}`

type mockedClientsConfig struct {
	rmqMockConfig
	redisMockConfig
	s3MockConfig
	pipelineMockConfig
}

type mockedClients struct {
	redis    *redisMock
	rmq      *rmqMock
	s3       *s3Mock
	pipeline *pipelineMock
}

type methodsCalls struct {
	redis    redisMockCalls
	rmq      rmqMockCalls
	s3       s3MockCalls
	pipeline pipelineCall
}

func configureWorker(config mockedClientsConfig) (*Worker, *mockedClients) {
	redis := &redisMock{config: config.redisMockConfig}
	s3 := &s3Mock{config: config.s3MockConfig}
	rmq := &rmqMock{config: config.rmqMockConfig}
	pplnMock := getPipelineMock(config.pipelineMockConfig)

	log := logger.NewLogger("Test Worker")

	return &Worker{
			config: Config{TaskMaxRetries: 3},
			redis:  redis,
			s3:     s3,
			rmq:    rmq,
			log:    &log,
			ppln:   pplnMock.ppln,
		}, &mockedClients{
			redis:    redis,
			rmq:      rmq,
			s3:       s3,
			pipeline: pplnMock,
		}
}

func runWorker(config mockedClientsConfig, body string) *mockedClients {
	worker, mocks := configureWorker(config)
	worker.processMessage(&amqp.Delivery{Body: []byte(body)})
	return mocks
}

func (mocks *mockedClients) calls() methodsCalls {
	return methodsCalls{
		redis:    mocks.redis.calls,
		rmq:      mocks.rmq.calls,
		s3:       mocks.s3.calls,
		pipeline: mocks.pipeline.calls,
	}
}

var (
	parsed = methodsCalls{
		redis:    redisMockCalls{getChunkTask: true, getJobTask: true, onTaskStarted: true, onTaskComplete: true},
		rmq:      rmqMockCalls{pingSequencer: true, acknowledgeDelivery: true},
		s3:       s3MockCalls{getTokens: true, saveResultsFile: true},
		pipeline: pipelineCall{true},
	}
	skipped = func(redis redisMockCalls) methodsCalls {
		return methodsCalls{redis: redis, rmq: rmqMockCalls{pingSequencer: true, acknowledgeDelivery: true}}
	}
	requeued = func(redis redisMockCalls) methodsCalls {
		return methodsCalls{redis: redis, rmq: rmqMockCalls{rejectDelivery: true}}
	}
	pipelineFailed = methodsCalls{
		redis:    redisMockCalls{getChunkTask: true, getJobTask: true, onTaskStarted: true, onTaskFailedWithError: true},
		rmq:      rmqMockCalls{pingSequencer: true, acknowledgeDelivery: true},
		s3:       s3MockCalls{getTokens: true},
		pipeline: pipelineCall{true},
	}
)

func TestWorker(t *testing.T) {
	tests := []struct {
		name   string
		config mockedClientsConfig
		body   string
		want   methodsCalls
	}{
		{
			name: "Successful",
			want: parsed,
		},
		{
			name: "Successful with job_task.stop_documents_on_failure",
			config: mockedClientsConfig{redisMockConfig: redisMockConfig{
				getJobTask: withValue{returnedValue: tasks.JobTask{StopDocumentsOnFailure: true}},
			}},
			want: methodsCalls{
				redis: redisMockCalls{
					getChunkTask: true, getJobTask: true, getDocTask: true, onTaskStarted: true, onTaskComplete: true,
				},
				rmq:      parsed.rmq,
				s3:       parsed.s3,
				pipeline: parsed.pipeline,
			},
		},
		{
			name: "Message is not JSON",
			body: "chunk-1",
			want: methodsCalls{rmq: rmqMockCalls{rejectDelivery: true}},
		},
		{
			name:   "Failed to get Chunk task",
			config: mockedClientsConfig{redisMockConfig: redisMockConfig{getChunkTask: withValue{fail: true}}},
			want:   requeued(redisMockCalls{getChunkTask: true}),
		},
		{
			name:   "Failed to get Job task",
			config: mockedClientsConfig{redisMockConfig: redisMockConfig{getJobTask: withValue{fail: true}}},
			want:   requeued(redisMockCalls{getChunkTask: true, getJobTask: true}),
		},
		{
			name: "Failed to get Doc task",
			config: mockedClientsConfig{redisMockConfig: redisMockConfig{
				getJobTask: withValue{returnedValue: tasks.JobTask{StopDocumentsOnFailure: true}},
				getDocTask: withValue{fail: true},
			}},
			want: requeued(redisMockCalls{getChunkTask: true, getJobTask: true, getDocTask: true}),
		},
		{
			name: "Already complete with success",
			config: mockedClientsConfig{redisMockConfig: redisMockConfig{getChunkTask: withValue{returnedValue: tasks.ChunkTask{
				TaskStatuses: tasks.ChunkTaskStatuses{Parser: tasks.ChunkTaskInfo{Status: tasks.TaskStatusCompletedSuccess}},
			}}}},
			want: skipped(redisMockCalls{getChunkTask: true}),
		},
		{
			name: "Already complete with failure",
			config: mockedClientsConfig{redisMockConfig: redisMockConfig{getChunkTask: withValue{returnedValue: tasks.ChunkTask{
				TaskStatuses: tasks.ChunkTaskStatuses{Parser: tasks.ChunkTaskInfo{Status: tasks.TaskStatusCompletedFailure}},
			}}}},
			want: skipped(redisMockCalls{getChunkTask: true}),
		},
		{
			name: "User cancelled",
			config: mockedClientsConfig{redisMockConfig: redisMockConfig{
				getJobTask: withValue{returnedValue: tasks.JobTask{UserCanceled: true}},
			}},
			want: skipped(redisMockCalls{getChunkTask: true, getJobTask: true, onTaskCancelled: true}),
		},
		{
			name: "Exceeded attempts",
			config: mockedClientsConfig{redisMockConfig: redisMockConfig{getChunkTask: withValue{returnedValue: tasks.ChunkTask{
				TaskStatuses: tasks.ChunkTaskStatuses{Parser: tasks.ChunkTaskInfo{Attempts: 3}},
			}}}},
			want: skipped(redisMockCalls{getChunkTask: true, getJobTask: true, onTaskExceededRetries: true}),
		},
		{
			name: "Cancelled because other worker already failed",
			config: mockedClientsConfig{redisMockConfig: redisMockConfig{
				getJobTask: withValue{returnedValue: tasks.JobTask{StopDocumentsOnFailure: true}},
				getDocTask: withValue{returnedValue: tasks.DocumentTaskCached{FailedTasks: []string{"ocr"}}},
			}},
			want: skipped(redisMockCalls{getChunkTask: true, getJobTask: true, getDocTask: true, onTaskCancelled: true}),
		},
		{
			name:   "Failed to update task in onTaskStarted",
			config: mockedClientsConfig{redisMockConfig: redisMockConfig{onTaskStarted: failingMethod{fail: true}}},
			want:   requeued(redisMockCalls{getChunkTask: true, getJobTask: true, onTaskStarted: true}),
		},
		{
			name:   "Failed to load tokens from S3",
			config: mockedClientsConfig{s3MockConfig: s3MockConfig{getTokens: withValue{fail: true}}},
			want: methodsCalls{
				redis: pipelineFailed.redis,
				rmq:   pipelineFailed.rmq,
				s3:    s3MockCalls{getTokens: true},
			},
		},
		{
			name:   "Tokens file is not a parse request",
			config: mockedClientsConfig{s3MockConfig: s3MockConfig{getTokens: withValue{returnedValue: []byte("They eat")}}},
			want: methodsCalls{
				redis: pipelineFailed.redis,
				rmq:   pipelineFailed.rmq,
				s3:    s3MockCalls{getTokens: true},
			},
		},
		{
			name:   "Failed due to pipeline error",
			config: mockedClientsConfig{pipelineMockConfig: pipelineMockConfig{fail: true}},
			want:   pipelineFailed,
		},
		{
			name: "Failed to update task in onTaskFailedWithError",
			config: mockedClientsConfig{
				pipelineMockConfig: pipelineMockConfig{fail: true},
				redisMockConfig:    redisMockConfig{onTaskFailedWithError: failingMethod{fail: true}},
			},
			want: methodsCalls{
				redis:    pipelineFailed.redis,
				rmq:      rmqMockCalls{rejectDelivery: true},
				s3:       pipelineFailed.s3,
				pipeline: pipelineFailed.pipeline,
			},
		},
		{
			name:   "Failed to update task in onTaskComplete",
			config: mockedClientsConfig{redisMockConfig: redisMockConfig{onTaskComplete: failingMethod{fail: true}}},
			want: methodsCalls{
				redis:    parsed.redis,
				rmq:      rmqMockCalls{rejectDelivery: true},
				s3:       parsed.s3,
				pipeline: parsed.pipeline,
			},
		},
		{
			name:   "Failed to save result to S3",
			config: mockedClientsConfig{s3MockConfig: s3MockConfig{saveResultsFile: failingMethod{fail: true}}},
			want: methodsCalls{
				redis:    pipelineFailed.redis,
				rmq:      pipelineFailed.rmq,
				s3:       parsed.s3,
				pipeline: parsed.pipeline,
			},
		},
		{
			name:   "Failed to acknowledge delivery",
			config: mockedClientsConfig{rmqMockConfig: rmqMockConfig{acknowledgeDelivery: failingMethod{fail: true}}},
			want:   parsed,
		},
		{
			name:   "Failed to ping sequencer",
			config: mockedClientsConfig{rmqMockConfig: rmqMockConfig{pingSequencer: failingMethod{fail: true}}},
			want: methodsCalls{
				redis:    parsed.redis,
				rmq:      rmqMockCalls{pingSequencer: true, rejectDelivery: true},
				s3:       parsed.s3,
				pipeline: parsed.pipeline,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := tt.body
			if body == "" {
				body = deliveryBody
			}
			mocks := runWorker(tt.config, body)
			assert.Equal(t, tt.want, mocks.calls())
		})
	}
}

func TestWorkerRequest(t *testing.T) {
	mocks := runWorker(mockedClientsConfig{pipelineMockConfig: pipelineMockConfig{result: `{"tid":"chunk-1"}`}}, deliveryBody)

	require.Len(t, mocks.pipeline.requests, 1)
	assert.Equal(t, pipeline.Request{
		Tid:       "chunk-1",
		Sentences: [][]string{{"They", "eat", "apples", "."}},
	}, mocks.pipeline.requests[0])
	assert.Equal(t, [][]byte{[]byte(`{"tid":"chunk-1"}`)}, mocks.s3.results)
}

func TestWorkerCancelMessage(t *testing.T) {
	mocks := runWorker(mockedClientsConfig{redisMockConfig: redisMockConfig{
		getJobTask: withValue{returnedValue: tasks.JobTask{StopDocumentsOnFailure: true}},
		getDocTask: withValue{returnedValue: tasks.DocumentTaskCached{FailedTasks: []string{"ocr"}}},
	}}, deliveryBody)

	require.Len(t, mocks.redis.errors, 1)
	assert.Contains(t, mocks.redis.errors[0], `in the "ocr" worker`)
}

func TestResultsFileKey(t *testing.T) {
	task := &Task{redisKey: "chunk-1", chunkTask: &tasks.ChunkTask{DocID: "doc-1"}}
	assert.Equal(t, "processed/documents/doc-1/chunks/chunk-1/chunk-1.parse_results.json", getResultsFileKey(task))
}

func TestSequencerMessage(t *testing.T) {
	buf, err := sequencerMessage(Message{WorkType: "parse", RedisKey: "chunk-1", Sender: "sequencer", Version: "1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"work_type":"parse","redis_key":"chunk-1","sender":"parser","version":"1"}`, string(buf))
}
