package provider

import (
	"os"
	"path/filepath"
	"sync"

	kitstatsd "github.com/go-kit/kit/metrics/statsd"
	kitlog "github.com/go-kit/log"
	"github.com/miyakowork/template-utils-security/common/metrics"
	"github.com/miyakowork/template-utils-security/common/metrics/disabled"
	"github.com/miyakowork/template-utils-security/common/metrics/prometheus"
	"github.com/miyakowork/template-utils-security/common/metrics/statsd"
	"github.com/miyakowork/template-utils-security/config"
	"github.com/miyakowork/template-utils-security/errors"
	"github.com/miyakowork/template-utils-security/security/keystore"
)

/* ------------------------------------------------------------------------------------------ */

type FactoryOpts struct {
	KeyStorePath string `json:"key_store_path" yaml:"KeyStorePath" mapstructure:"keystorepath"`
	ReadOnly     bool   `json:"read_only" yaml:"ReadOnly" mapstructure:"readonly"`
	Metrics      string `json:"metrics" yaml:"Metrics" mapstructure:"metrics"`
	BufferLength int    `json:"buffer_length" yaml:"BufferLength" mapstructure:"bufferlength"`
}

// ReadConfig 从配置文件的 security 小节中读出工厂的选项。
func ReadConfig() (*FactoryOpts, error) {
	cfg := config.GetConfig()

	opts := &FactoryOpts{}
	if err := cfg.UnmarshalKey("security", opts); err != nil {
		return nil, errors.NewErrorf("cannot read config file, the error is \"%s\"", err.Error())
	}
	opts.KeyStorePath = filepath.Join(os.Getenv("SECURITY_HOME"), opts.KeyStorePath)
	return opts, nil
}

/* ------------------------------------------------------------------------------------------ */

type suiteFactory struct {
	opts  *FactoryOpts
	suite *Suite
}

var (
	defaultFactory *suiteFactory
	factoryMutex   sync.Mutex
)

// InitFactoryWithOpts 初始化全局的套件工厂，重复调用会覆盖之前的选项并重建套件。
func InitFactoryWithOpts(opts *FactoryOpts) error {
	factoryMutex.Lock()
	defer factoryMutex.Unlock()

	if opts == nil {
		var err error
		if opts, err = ReadConfig(); err != nil {
			return err
		}
	}
	defaultFactory = &suiteFactory{opts: opts}
	return nil
}

// GetSuite 返回全局套件，懒加载，首次调用时才真正创建密钥库和度量提供者。
func GetSuite() (*Suite, error) {
	factoryMutex.Lock()
	defer factoryMutex.Unlock()

	if defaultFactory == nil {
		return nil, errors.NewError("you should initialize the suite factory before calling this method")
	}
	if defaultFactory.suite != nil {
		return defaultFactory.suite, nil
	}

	suite, err := createSuite(defaultFactory.opts)
	if err != nil {
		return nil, err
	}
	defaultFactory.suite = suite
	return suite, nil
}

func createSuite(opts *FactoryOpts) (*Suite, error) {
	ks, err := keystore.NewFileStore(opts.KeyStorePath, opts.ReadOnly)
	if err != nil {
		return nil, errors.NewErrorf("cannot create suite, the error is \"%s\"", err.Error())
	}

	metricsProvider, err := newMetricsProvider(opts.Metrics)
	if err != nil {
		return nil, errors.NewErrorf("cannot create suite, the error is \"%s\"", err.Error())
	}

	return NewSuite(ks, opts.BufferLength, metricsProvider)
}

func newMetricsProvider(kind string) (metrics.Provider, error) {
	switch kind {
	case "", "disabled":
		return &disabled.Provider{}, nil
	case "prometheus":
		return &prometheus.Provider{}, nil
	case "statsd":
		return &statsd.Provider{Statsd: kitstatsd.New("security.", kitlog.NewNopLogger())}, nil
	default:
		return nil, errors.NewErrorf("unknown metrics provider kind \"%s\"", kind)
	}
}
