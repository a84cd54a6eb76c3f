package config

import (
	"github.com/gear6io/fixturegen/formats/builtin"
	"github.com/gear6io/fixturegen/storage/minio"
)

// CodecOptions maps the output section onto codec registry options.
func (c *Config) CodecOptions() builtin.Options {
	opts := builtin.DefaultOptions()
	if c.Output.AvroCodec != "" {
		opts.AvroBlockCodec = c.Output.AvroCodec
	}
	if c.Output.ParquetCompression != "" {
		opts.ParquetCompression = c.Output.ParquetCompression
	}
	opts.ParquetCompressionLevel = c.Output.ParquetCompressionLevel
	opts.ParquetColumnCompression = c.Output.ParquetColumnCompression
	return opts
}

// MinioConfig maps the s3 section onto the S3 engine settings.
func (c *Config) MinioConfig() minio.Config {
	return minio.Config{
		Endpoint:     c.S3.Endpoint,
		Region:       c.S3.Region,
		AccessKey:    c.S3.AccessKey,
		SecretKey:    c.S3.SecretKey,
		UseSSL:       c.S3.UseSSL,
		CreateBucket: c.S3.CreateBucket,
	}
}
