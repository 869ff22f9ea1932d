package logger

import (
	"context"
	"fmt"
	"io"
	appConfig "lolanalyzer/pkg/config"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Logger used by the tasks, every run has its own log file.
type NewLogger struct {
	mu       sync.Mutex
	logFile  *os.File
	filePath string
	out      io.Writer
}

// Create the log instance with a temporary file.
// Lines are also written to the console.
func CreateLogger() (*NewLogger, error) {
	return CreateLoggerWithOutput(os.Stdout)
}

// Create the log instance writing the lines to the given output as well.
func CreateLoggerWithOutput(out io.Writer) (*NewLogger, error) {
	f, err := os.CreateTemp("", "log-*.log")
	if err != nil {
		return nil, err
	}

	if out == nil {
		out = io.Discard
	}

	return &NewLogger{
		logFile:  f,
		filePath: f.Name(),
		out:      out,
	}, nil
}

// Log a simple info.
func (l *NewLogger) Infof(format string, args ...interface{}) {
	l.write("[INFO]", format, args...)
}

// Log a error.
func (l *NewLogger) Errorf(format string, args ...interface{}) {
	l.write("[ERROR]", format, args...)
}

// Write something to the logger.
func (l *NewLogger) write(infoType string, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	line := fmt.Sprintf("%-8s %s %s\n", infoType, timestamp, fmt.Sprintf(format, args...))

	l.logFile.WriteString(line)
	io.WriteString(l.out, line)
}

// Contents returns everything written since the last clean.
func (l *NewLogger) Contents() (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Clean the file contents.
func (l *NewLogger) CleanFile() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logFile.Truncate(0)

	l.logFile.Seek(0, 0)
}

// Close the file and remove it from disk.
func (l *NewLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.logFile.Close(); err != nil {
		return err
	}
	return os.Remove(l.filePath)
}

// Build the client for the log bucket.
// Static keys take precedence, otherwise the default credential chain is used.
func newS3Client(ctx context.Context, bucket appConfig.BucketConfiguration) (*s3.Client, error) {
	var cfg aws.Config
	if bucket.AccessKey != "" {
		cfg = aws.Config{
			Region: bucket.Region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(
					bucket.AccessKey,
					bucket.AccessSecret,
					"",
				),
			),
		}
	} else {
		loaded, err := awsConfig.LoadDefaultConfig(ctx, awsConfig.WithRegion(bucket.Region))
		if err != nil {
			return nil, fmt.Errorf("failed to load default aws config: %w", err)
		}
		cfg = loaded
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if bucket.Endpoint != "" {
			o.BaseEndpoint = aws.String(bucket.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Upload the log to a s3 bucket.
// Does nothing when no bucket is configured.
func (l *NewLogger) UploadToS3Bucket(ctx context.Context, bucket appConfig.BucketConfiguration, objectKey string) error {
	if bucket.LogBucket == "" {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.logFile.Seek(0, 0); err != nil {
		return fmt.Errorf("failed to rewind file: %w", err)
	}

	s3Client, err := newS3Client(ctx, bucket)
	if err != nil {
		return err
	}

	// Run the put.
	_, err = s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket.LogBucket),
		Key:    aws.String(objectKey),
		Body:   l.logFile,
		ACL:    types.ObjectCannedACLPrivate,
	})
	if err != nil {
		l.logFile.Seek(0, io.SeekEnd)
		return fmt.Errorf("failed to upload %s to S3 bucket: %w", objectKey, err)
	}

	// Clean the file after sending.
	l.logFile.Truncate(0)
	l.logFile.Seek(0, 0)

	return nil
}
