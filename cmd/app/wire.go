//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yanqian/faq-translate/internal/bootstrap"
	"github.com/yanqian/faq-translate/internal/domain/faq"
	"github.com/yanqian/faq-translate/internal/domain/translation"
	"github.com/yanqian/faq-translate/internal/infra/config"
	httpiface "github.com/yanqian/faq-translate/internal/interface/http"
	"github.com/yanqian/faq-translate/pkg/logger"
	"github.com/yanqian/faq-translate/pkg/metrics"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideFAQConfig,
		provideTranslationConfig,
		provideRegistry,
		provideMetrics,
		provideFAQRepository,
		provideTranslationCache,
		provideTranslationProvider,
		translation.NewService,
		faq.NewService,
		wire.Bind(new(prometheus.Gatherer), new(*prometheus.Registry)),
		wire.Bind(new(translation.Recorder), new(*metrics.Metrics)),
		wire.Bind(new(faq.Translator), new(translation.Service)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
