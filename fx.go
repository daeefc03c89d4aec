package hederakeys

import (
	"fmt"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/xyclone-designs/go-hedera-keys/config"
	"github.com/xyclone-designs/go-hedera-keys/pkg/keypem"
	"github.com/xyclone-designs/go-hedera-keys/pkg/keystore"
	"github.com/xyclone-designs/go-hedera-keys/pkg/lib/log"
)

var fxLogger = log.Logger("hederakeys/fx")

// ============================================================================
//                              模块输入依赖
// ============================================================================

// ModuleInput 定义模块输入依赖
type ModuleInput struct {
	fx.In

	// 配置（可选，使用默认配置）
	Config *config.Config `optional:"true"`
}

// ============================================================================
//                              模块输出服务
// ============================================================================

// ModuleOutput 定义模块输出服务
type ModuleOutput struct {
	fx.Out

	// ResolvedConfig 校验后的配置
	ResolvedConfig config.Config

	// Keystore keystore 编解码器
	Keystore *keystore.Codec

	// PEM PEM 编解码器
	PEM *keypem.Codec
}

// ============================================================================
//                              服务提供
// ============================================================================

// ProvideServices 提供模块服务
func ProvideServices(input ModuleInput) (ModuleOutput, error) {
	cfg := config.NewConfig()
	if input.Config != nil {
		cfg = input.Config
	}
	if err := cfg.Validate(); err != nil {
		return ModuleOutput{}, fmt.Errorf("config validation failed: %w", err)
	}

	ks, err := keystore.NewCodec(cfg.Keystore)
	if err != nil {
		return ModuleOutput{}, err
	}
	pc, err := keypem.NewCodec(cfg.PEM)
	if err != nil {
		return ModuleOutput{}, err
	}

	fxLogger.Debug("编解码器就绪",
		"keystoreIterations", cfg.Keystore.Iterations,
		"pemIterations", cfg.PEM.Iterations)

	return ModuleOutput{
		ResolvedConfig: *cfg,
		Keystore:       ks,
		PEM:            pc,
	}, nil
}

// setupLogging 按配置初始化默认日志
func setupLogging(cfg config.Config) error {
	return log.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format)
}

// ============================================================================
//                              模块定义
// ============================================================================

// Module 返回 fx 模块配置
func Module() fx.Option {
	return fx.Module("hederakeys",
		fx.Provide(ProvideServices),
		fx.Invoke(setupLogging),
	)
}

// NewApp 构建包含本模块的 fx 应用
//
// cfg 为 nil 时使用默认配置；extra 追加调用方的 fx 选项。
func NewApp(cfg *config.Config, extra ...fx.Option) *fx.App {
	opts := []fx.Option{
		Module(),
		// 禁用 Fx 日志输出（避免干扰用户日志）
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
	}
	if cfg != nil {
		opts = append(opts, fx.Supply(cfg))
	}
	return fx.New(append(opts, extra...)...)
}
