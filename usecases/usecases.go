package usecases

import (
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"

	"github.com/getforesight/foresight-backend/repositories"
	"github.com/getforesight/foresight-backend/usecases/executor_factory"
	"github.com/getforesight/foresight-backend/usecases/monitoring"
)

const signedUrlCacheSize = 512

type Usecases struct {
	Repositories    repositories.Repositories
	appName         string
	apiVersion      string
	resultBucketUrl string
	cacheTtlDays    int

	signedUrlCache *expirable.LRU[string, string]
}

type Option func(*options)

type options struct {
	appName         string
	apiVersion      string
	resultBucketUrl string
	cacheTtlDays    int
}

func WithAppName(appName string) Option {
	return func(o *options) {
		o.appName = appName
	}
}

func WithApiVersion(apiVersion string) Option {
	return func(o *options) {
		o.apiVersion = apiVersion
	}
}

func WithResultBucketUrl(bucket string) Option {
	return func(o *options) {
		o.resultBucketUrl = bucket
	}
}

func WithCacheTtlDays(days int) Option {
	return func(o *options) {
		o.cacheTtlDays = days
	}
}

func NewUsecases(repositories repositories.Repositories, opts ...Option) Usecases {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.cacheTtlDays == 0 {
		o.cacheTtlDays = DefaultCacheTtlDays
	}
	return Usecases{
		Repositories:    repositories,
		appName:         o.appName,
		apiVersion:      o.apiVersion,
		resultBucketUrl: o.resultBucketUrl,
		cacheTtlDays:    o.cacheTtlDays,
		signedUrlCache:  expirable.NewLRU[string, string](signedUrlCacheSize, nil, signedUrlCacheTtl),
	}
}

func (usecases *Usecases) NewExecutorFactory() executor_factory.ExecutorFactory {
	return executor_factory.NewDbExecutorFactory(usecases.Repositories.ExecutorGetter)
}

func (usecases *Usecases) NewTransactionFactory() executor_factory.TransactionFactory {
	return executor_factory.NewDbExecutorFactory(usecases.Repositories.ExecutorGetter)
}

func (usecases *Usecases) NewLivenessUsecase() LivenessUsecase {
	return LivenessUsecase{
		executorFactory:    usecases.NewExecutorFactory(),
		livenessRepository: usecases.Repositories.ForesightDbRepository,
	}
}

func (usecases *Usecases) NewOrganizationUsecase() OrganizationUsecase {
	return OrganizationUsecase{
		executorFactory:        usecases.NewExecutorFactory(),
		transactionFactory:     usecases.NewTransactionFactory(),
		organizationRepository: usecases.Repositories.OrganizationRepository,
	}
}

func (usecases *Usecases) NewModelRunUsecase() ModelRunUsecase {
	return ModelRunUsecase{
		executorFactory:    usecases.NewExecutorFactory(),
		transactionFactory: usecases.NewTransactionFactory(),
		repository:         usecases.Repositories.ForesightDbRepository,
	}
}

func (usecases *Usecases) NewSimulationUsecase() SimulationUsecase {
	return SimulationUsecase{
		executorFactory:     usecases.NewExecutorFactory(),
		transactionFactory:  usecases.NewTransactionFactory(),
		repository:          usecases.Repositories.ForesightDbRepository,
		modelRunRepository:  usecases.Repositories.ForesightDbRepository,
		taskQueueRepository: usecases.Repositories.TaskQueueRepository,
		clock:               usecases.Repositories.Clock,
		defaultCacheTtlDays: usecases.cacheTtlDays,
	}
}

func (usecases *Usecases) NewSimulationViewUsecase() SimulationViewUsecase {
	return SimulationViewUsecase{
		executorFactory: usecases.NewExecutorFactory(),
		repository:      usecases.Repositories.ForesightDbRepository,
		blobRepository:  usecases.Repositories.BlobRepository,
		signedUrlCache:  usecases.signedUrlCache,
	}
}

func (usecases *Usecases) NewOrgSeedUsecase() OrgSeedUsecase {
	return OrgSeedUsecase{
		executorFactory:        usecases.NewExecutorFactory(),
		transactionFactory:     usecases.NewTransactionFactory(),
		organizationRepository: usecases.Repositories.OrganizationRepository,
		repository:             usecases.Repositories.ForesightDbRepository,
		modelRunRepository:     usecases.Repositories.ForesightDbRepository,
		blobRepository:         usecases.Repositories.BlobRepository,
		resultBucketUrl:        usecases.resultBucketUrl,
		clock:                  usecases.Repositories.Clock,
	}
}

func (usecases *Usecases) NewTaskQueueWorker(riverClient *river.Client[pgx.Tx]) *TaskQueueWorker {
	return NewTaskQueueWorker(
		usecases.NewExecutorFactory(),
		usecases.Repositories.OrganizationRepository,
		riverClient,
	)
}

func (usecases *Usecases) NewBacklogReportWorker() *monitoring.BacklogReportWorker {
	return monitoring.NewBacklogReportWorker(
		usecases.NewExecutorFactory(),
		usecases.Repositories.OrganizationRepository,
		usecases.Repositories.ForesightDbRepository,
		usecases.Repositories.Clock,
	)
}
