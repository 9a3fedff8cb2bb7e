package app

import (
	"github.com/carousell/ct-go/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"

	"github.com/trannm-ct/channel-chat/internal/config"
	"github.com/trannm-ct/channel-chat/internal/repo/blob"
	"github.com/trannm-ct/channel-chat/internal/repo/mongodb"
	"github.com/trannm-ct/channel-chat/internal/server"
	"github.com/trannm-ct/channel-chat/internal/usecase"
)

func Invoke(funcs ...any) *fx.App {
	log := logger.MustNamed("app")
	conf := config.MustLoad()
	log.Debugw("config loaded", log.Reflect("config", conf))
	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.ZapLogger{
				Logger: log.Unwrap().Desugar(),
			}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		fx.Provide(
			newMongoDB,
			newBlobClient,
			newBlobStore,
			newLocalStore,
			newRouter,
			newChannelList,
			newChannelView,

			server.NewController,

			usecase.NewNotifier,
			usecase.NewAlerter,
			usecase.NewChatUsecase,

			mongodb.NewMessageRepository,

			blob.NewFileResolver,

			func(v *usecase.ChannelView) usecase.Viewer { return v },
			func(s *blob.Store) usecase.AttachmentStore { return s },
		),
		fx.Supply(conf),
		fx.Invoke(funcs...),
	)
}
