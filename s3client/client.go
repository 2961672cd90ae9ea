package s3client

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/sts"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"scrappybara.io/depparse/logger"
)

const maxRetries = 4

var (
	ErrNoSession = errors.New("no S3 session")

	clientLogger = logger.NewLogger("S3Client")
	sdkLogger    = logger.NewLogger("S3-SDK")
)

// Client moves token files and parse results in and out of one bucket. A background goroutine owns the
// session and replaces it when a transfer fails.
type Client struct {
	holder *sessionHolder
	env    EnvironmentConfig
}

type sessionHolder struct {
	curr      *session.Session
	requestCh <-chan *session.Session
	errorCh   chan<- error
	closeCh   chan<- struct{}
}

func New() (*Client, error) {
	errLogger := clientLogger.With().Caller().Logger()
	env, err := ReadEnvironment()
	if err != nil {
		errLogger.Err(err).Msg("Failed to get proper variables from environment")
		return nil, err
	}
	client := Client{env: env}
	sessionCh := make(chan *session.Session)
	errorCh := make(chan error)
	closeCh := make(chan struct{}, 1)

	client.holder = &sessionHolder{
		requestCh: sessionCh,
		errorCh:   errorCh,
		closeCh:   closeCh,
	}
	if err := client.acquireNewSession(); err != nil {
		return nil, err
	}
	go keepSessionRefreshed(&client, sessionCh, errorCh, closeCh)
	return &client, nil
}

func (client Client) Upload(data []byte, key string) (*s3manager.UploadOutput, error) {
	params := &s3manager.UploadInput{
		Bucket:      aws.String(client.env.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	}
	sess, err := client.session()
	if err != nil {
		return nil, err
	}
	output, err := client.upload(sess, params)
	if err == nil {
		return output, nil
	}
	sess, err = client.tryRefreshingSession(err)
	if err != nil {
		return nil, err
	}
	return client.upload(sess, params)
}

func (client Client) Download(key string) ([]byte, error) {
	params := &s3.GetObjectInput{
		Bucket: aws.String(client.env.BucketName),
		Key:    aws.String(key),
	}
	sess, err := client.session()
	if err != nil {
		return nil, err
	}
	res, err := client.download(sess, params)
	if err == nil {
		return res, nil
	}
	sess, err = client.tryRefreshingSession(err)
	if err != nil {
		return nil, err
	}
	return client.download(sess, params)
}

func (client Client) Close() {
	client.holder.closeCh <- struct{}{}
}

func (client Client) upload(sess *session.Session, params *s3manager.UploadInput) (*s3manager.UploadOutput, error) {
	log := clientLogger.With().Str("key", *params.Key).Str("bucket", *params.Bucket).Logger()
	sdkLog := sdkLogger.With().Str("key", *params.Key).Str("bucket", *params.Bucket).Logger()

	uploader := s3manager.NewUploader(sess.Copy(&aws.Config{Logger: newSDKLogger(sdkLog)}))
	log.Debug().Msg("Uploading parse results")
	return uploader.Upload(params)
}

func (client Client) download(sess *session.Session, params *s3.GetObjectInput) ([]byte, error) {
	log := clientLogger.With().Str("key", *params.Key).Str("bucket", *params.Bucket).Logger()
	sdkLog := sdkLogger.With().Str("key", *params.Key).Str("bucket", *params.Bucket).Logger()

	downloader := s3manager.NewDownloader(sess.Copy(&aws.Config{Logger: newSDKLogger(sdkLog)}))
	buf := aws.NewWriteAtBuffer([]byte{})

	log.Debug().Msg("Downloading tokens")
	size, err := downloader.Download(buf, params)
	if err != nil {
		log.Error().Err(err).Msg("Failed to download file")
		return nil, err
	}
	log.Debug().Int64("size", size).Msg("Downloaded tokens")
	return buf.Bytes(), nil
}

func keepSessionRefreshed(client *Client, sessionCh chan<- *session.Session, errorCh <-chan error, closeCh <-chan struct{}) {
	for {
		select {
		case sessionCh <- client.holder.curr:
			continue
		default:
		}
		select {
		case sessionCh <- client.holder.curr:
		case err := <-errorCh:
			clientLogger.Error().Err(err).Msg("Caught error while using S3 session, trying to refresh it")
			if err = client.acquireNewSession(); err != nil {
				clientLogger.Error().Err(err).Msg("Caught error while refreshing S3 session")
				continue
			}
			clientLogger.Info().Msg("Successfully refreshed session")
		case <-closeCh:
			clientLogger.Info().Msg("Closing client")
			return
		}
	}
}

func (client Client) tryRefreshingSession(err error) (*session.Session, error) {
	var sess *session.Session
	select {
	case client.holder.errorCh <- err:
		sess = <-client.holder.requestCh
	case sess = <-client.holder.requestCh:
	}
	if sess == nil {
		return nil, fmt.Errorf("%w: refresh failed after %v", ErrNoSession, err)
	}
	return sess, nil
}

func (client Client) session() (*session.Session, error) {
	sess := <-client.holder.requestCh
	if sess == nil {
		return nil, ErrNoSession
	}
	return sess, nil
}

func (env EnvironmentConfig) instanceConfig() *aws.Config {
	return aws.NewConfig().
		WithRegion(env.Region).
		WithMaxRetries(maxRetries).
		WithLogLevel(aws.LogDebug)
}

// staticConfig uses the credentials from the environment. Dev deployments may point at a local endpoint.
func (env EnvironmentConfig) staticConfig() (*aws.Config, error) {
	creds := credentials.NewStaticCredentials(env.AccessKeyID, env.AccessKey, "")
	if _, err := creds.Get(); err != nil {
		return nil, fmt.Errorf("credentials from environment: %w", err)
	}
	cfg := env.instanceConfig().WithCredentials(creds)
	if env.DeployEnv == "dev" && len(env.AwsEndpoint) > 0 {
		cfg = cfg.WithEndpoint(env.AwsEndpoint).WithS3ForcePathStyle(true)
	}
	return cfg, nil
}

func (client *Client) acquireNewSession() error {
	sess, err := session.NewSession(client.env.instanceConfig())
	if err == nil {
		_, err = sts.New(sess).GetCallerIdentity(&sts.GetCallerIdentityInput{})
	}
	if err == nil {
		client.holder.curr = sess
		clientLogger.Info().Msg("S3 session successfully initialized using instance role")
		return nil
	}
	clientLogger.Info().Msg("Could not initialize S3 session using instance role, trying env credentials")

	cfg, err := client.env.staticConfig()
	if err != nil {
		client.holder.curr = nil
		clientLogger.Error().Err(err).Msg("Could not initialize S3 session")
		return err
	}
	sess, err = session.NewSession(cfg)
	if err == nil {
		_, err = sts.New(sess).GetCallerIdentity(&sts.GetCallerIdentityInput{})
	}
	if err != nil {
		client.holder.curr = nil
		clientLogger.Error().Err(err).Msg("Could not initialize S3 session")
		return fmt.Errorf("%w: %v", ErrNoSession, err)
	}
	client.holder.curr = sess
	clientLogger.Info().Msg("S3 session successfully initialized using env credentials")
	return nil
}

type EnvironmentConfig struct {
	BucketName  string `envconfig:"MDL_COMN_STORAGE_CONTAINER_NAME" required:"true"`
	DeployEnv   string `envconfig:"PARSER_ENV" default:"prod"`
	Region      string `envconfig:"MDL_COMN_AWS_REGION_NAME" required:"true"`
	AwsEndpoint string `envconfig:"MDL_COMN_AWS_ENDPOINT_URL" default:""`
	AccessKeyID string `envconfig:"MDL_COMN_AWS_ACCESS_ID" default:""`
	AccessKey   string `envconfig:"MDL_COMN_AWS_ACCESS_KEY" default:""`
}

func ReadEnvironment() (EnvironmentConfig, error) {
	var config EnvironmentConfig
	err := envconfig.Process("", &config)
	return config, err
}

type sdkLog struct {
	log zerolog.Logger
}

func newSDKLogger(log zerolog.Logger) *sdkLog {
	return &sdkLog{log}
}

func (l *sdkLog) Log(v ...interface{}) {
	l.log.Debug().Msg(fmt.Sprint(v...))
}
