// SPDX-License-Identifier: MIT
package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thatcatcamp/colorset/internal/colorset"
)

type fakePutter struct {
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakePutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.inputs = append(f.inputs, params)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func sampleSet() *colorset.ColorSet {
	set := colorset.New()
	set.Set("Primary", colorset.MustParseHex("#3366CC"), nil, nil)
	return set
}

func TestPublishUploadsEncodedSet(t *testing.T) {
	fake := &fakePutter{}
	pub := NewPublisher(fake, "themes", "/colorsets/", zerolog.Nop())

	key, err := pub.Publish(context.Background(), "ocean", sampleSet(), colorset.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "colorsets/ocean.colorset", key)

	require.Len(t, fake.inputs, 1)
	in := fake.inputs[0]
	assert.Equal(t, "themes", aws.ToString(in.Bucket))
	assert.Equal(t, key, aws.ToString(in.Key))
	assert.Equal(t, "application/json", aws.ToString(in.ContentType))
	assert.Equal(t, int64(len(fake.bodies[0])), aws.ToInt64(in.ContentLength))
	assert.Equal(t, "json", in.Metadata["colorset-format"])
	assert.Equal(t, "1", in.Metadata["colorset-colors"])

	decoded, err := colorset.Parse(fake.bodies[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"Primary"}, decoded.Names())
}

func TestPublishAutoUsesSetFormat(t *testing.T) {
	fake := &fakePutter{}
	pub := NewPublisher(fake, "themes", "", zerolog.Nop())

	key, err := pub.Publish(context.Background(), "ocean", sampleSet(), colorset.FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, "ocean.colorset", key)
	assert.Equal(t, "application/octet-stream", aws.ToString(fake.inputs[0].ContentType))
	assert.Equal(t, []byte("TESROLOC"), fake.bodies[0][:8])
}

func TestPublishRejectsBadInput(t *testing.T) {
	fake := &fakePutter{}

	pub := NewPublisher(fake, "themes", "p", zerolog.Nop())
	for _, name := range []string{"", "  ", "a/b", `a\b`} {
		_, err := pub.Publish(context.Background(), name, sampleSet(), colorset.FormatBinary)
		assert.Error(t, err, "name %q", name)
	}

	noBucket := NewPublisher(fake, "", "p", zerolog.Nop())
	_, err := noBucket.Publish(context.Background(), "ocean", sampleSet(), colorset.FormatBinary)
	assert.Error(t, err)
	assert.Empty(t, fake.inputs)
}

func TestPublishWrapsUploadErrors(t *testing.T) {
	boom := errors.New("access denied")
	pub := NewPublisher(&fakePutter{err: boom}, "themes", "", zerolog.Nop())

	_, err := pub.Publish(context.Background(), "ocean", sampleSet(), colorset.FormatBinary)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "s3://themes/ocean.colorset")
}

func TestNewS3Client(t *testing.T) {
	client := NewS3Client(Config{Region: "eu-west-1", AccessKey: "AK", SecretKey: "SK", Endpoint: "http://localhost:9000"})
	require.NotNil(t, client)

	opts := client.Options()
	assert.Equal(t, "eu-west-1", opts.Region)
	assert.True(t, opts.UsePathStyle)
	assert.Equal(t, "http://localhost:9000", aws.ToString(opts.BaseEndpoint))

	creds, err := opts.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AK", creds.AccessKeyID)

	var _ ObjectPutter = client
}
