package propmigrate

import (
	"os"

	"github.com/cqkv/propmigrate/codec"
	"github.com/cqkv/propmigrate/fio"
	"github.com/cqkv/propmigrate/model"
	"github.com/sirupsen/logrus"
)

type options struct {
	version string

	ioManagerCreator func(path string) (fio.IOManager, error)
	codec            codec.Codec
	logger           logrus.FieldLogger
}

type Option func(*options)

var defaultIOManagerCreator = func(path string) (fio.IOManager, error) {
	return fio.NewFileIO(path)
}

var mmapIOManagerCreator = func(path string) (fio.IOManager, error) {
	return fio.NewMMapIO(path)
}

func defaultLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.InfoLevel)
	return logger
}

func newOptions(ops ...Option) *options {
	opts := &options{
		version:          model.LegacyVersion,
		ioManagerCreator: defaultIOManagerCreator,
		codec:            codec.NewCodecImpl(),
	}
	for _, op := range ops {
		op(opts)
	}
	if opts.logger == nil {
		opts.logger = defaultLogger()
	}
	return opts
}

func WithIOManagerCreator(fn func(path string) (fio.IOManager, error)) Option {
	return func(o *options) {
		o.ioManagerCreator = fn
	}
}

// WithMMap reads the store through a read only memory mapping
func WithMMap() Option {
	return WithIOManagerCreator(mmapIOManagerCreator)
}

// WithVersion sets the store version whose trailer ends the file
func WithVersion(version string) Option {
	return func(o *options) {
		o.version = version
	}
}

func WithCodec(codec codec.Codec) Option {
	return func(o *options) {
		o.codec = codec
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
