package usecases

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/getforesight/foresight-backend/models"
	"github.com/getforesight/foresight-backend/pure_utils"
	"github.com/getforesight/foresight-backend/repositories"
	"github.com/getforesight/foresight-backend/usecases/executor_factory"
	"github.com/getforesight/foresight-backend/usecases/result_parser"
	"github.com/getforesight/foresight-backend/utils"
)

// Signed urls stay valid for one hour; the cache keeps them for a fraction of
// that so a caller can never be served a url about to expire.
const signedUrlCacheTtl = 10 * time.Minute

type signedUrlGenerator interface {
	GenerateSignedUrl(ctx context.Context, bucketUrl, fileName string) (string, error)
}

// SimulationViewUsecase reconciles the two records tracking one simulation
// into the single view served to callers. The identifier it receives may be a
// queue entry id or a simulation result id; dashboards poll it with whichever
// one they happen to hold.
type SimulationViewUsecase struct {
	executorFactory executor_factory.ExecutorFactory
	repository      SimulationRepository
	blobRepository  signedUrlGenerator
	signedUrlCache  *expirable.LRU[string, string]
}

// GetSimulationView resolves anyId against both records. A queue entry id
// leads to its simulation result through the parameter bag; a result id leads
// back to its queue entry by reference, or to a synthesized virtual entry
// when none exists (pruned entry, or a row predating transactional creation).
// NotFound is the only hard failure: a missing artifact url or a malformed
// payload degrades the view instead of failing it.
func (uc SimulationViewUsecase) GetSimulationView(
	ctx context.Context,
	organizationId string,
	anyId string,
) (models.SimulationView, error) {
	exec := uc.executorFactory.NewExecutor()

	entry, result, err := uc.locateRecords(ctx, exec, anyId)
	if err != nil {
		return models.SimulationView{}, err
	}
	if result.OrganizationId != organizationId {
		return models.SimulationView{}, errors.Wrap(models.NotFoundError,
			"simulation does not belong to the caller's organization")
	}

	view := uc.buildView(ctx, entry, result)
	view.ResultUrl = uc.resolveResultUrl(ctx, result)
	return view, nil
}

// ListSimulationViews returns slim views (no signed urls) of every simulation
// of a model run, newest first.
func (uc SimulationViewUsecase) ListSimulationViews(
	ctx context.Context,
	organizationId string,
	modelRunId string,
) ([]models.SimulationView, error) {
	exec := uc.executorFactory.NewExecutor()

	results, err := uc.repository.ListSimulationResults(ctx, exec, organizationId, modelRunId)
	if err != nil {
		return nil, err
	}

	views := make([]models.SimulationView, 0, len(results))
	for _, result := range results {
		entry, err := uc.repository.GetQueueEntryByResourceId(ctx, exec, result.Id)
		if err != nil {
			return nil, err
		}
		if entry == nil {
			entry = pure_utils.Ptr(models.NewVirtualQueueEntry(result.Id, result))
		}
		views = append(views, uc.buildView(ctx, *entry, result))
	}
	return views, nil
}

// locateRecords implements the dual-id resolution: queue entry first, then
// simulation result with a reverse search for its entry, then the virtual
// entry fallback.
func (uc SimulationViewUsecase) locateRecords(
	ctx context.Context,
	exec repositories.Executor,
	anyId string,
) (models.QueueEntry, models.SimulationResult, error) {
	entry, err := uc.repository.GetQueueEntryById(ctx, exec, anyId)
	switch {
	case err == nil:
		resultId := entry.Params.SimulationResultId
		if resultId == "" && entry.ResourceId != nil {
			// very old entries carry the reference only in the column
			resultId = *entry.ResourceId
		}
		result, err := uc.repository.GetSimulationResultById(ctx, exec, resultId)
		if err != nil {
			return models.QueueEntry{}, models.SimulationResult{}, errors.Wrapf(err,
				"queue entry %s references simulation result %s", entry.Id, resultId)
		}
		return entry, result, nil

	case errors.Is(err, models.NotFoundError):
		result, err := uc.repository.GetSimulationResultById(ctx, exec, anyId)
		if err != nil {
			return models.QueueEntry{}, models.SimulationResult{}, errors.Wrapf(err,
				"no queue entry nor simulation result with id %s", anyId)
		}
		foundEntry, err := uc.repository.GetQueueEntryByResourceId(ctx, exec, result.Id)
		if err != nil {
			return models.QueueEntry{}, models.SimulationResult{}, err
		}
		if foundEntry == nil {
			return models.NewVirtualQueueEntry(anyId, result), result, nil
		}
		return *foundEntry, result, nil

	default:
		return models.QueueEntry{}, models.SimulationResult{}, err
	}
}

func (uc SimulationViewUsecase) buildView(
	ctx context.Context,
	entry models.QueueEntry,
	result models.SimulationResult,
) models.SimulationView {
	status := mergeStatus(entry, result)

	progress := result_parser.NormalizeProgress(ctx, entry.Progress)
	if status == models.SimulationDone && progress < 100 {
		// a finished simulation never reports partial progress, whatever the
		// engine last wrote on the entry
		progress = 100
	}

	percentiles := result_parser.ParsePercentileTable(ctx, result.Percentiles)

	return models.SimulationView{
		QueueId:             entry.Id,
		ResultId:            result.Id,
		OrganizationId:      result.OrganizationId,
		Status:              status,
		Progress:            progress,
		NumSimulations:      result.NumSimulations,
		ResultLocation:      result.ResultLocation,
		Percentiles:         percentiles,
		Sensitivity:         result_parser.ParseSensitivity(ctx, result.Sensitivity, percentiles),
		SurvivalProbability: result_parser.SurvivalProbability(percentiles),
		ConfidenceLevel:     result.ConfidenceLevel,
		CpuSecondsEstimate:  result.CpuSecondsEstimate,
		CpuSecondsActual:    result.CpuSecondsActual,
		CreatedAt:           result.CreatedAt,
		FinishedAt:          result.FinishedAt,
	}
}

// mergeStatus picks the status exposed to callers. The engine finishes
// writing the result record before it flips the queue entry, so a terminal
// result always wins over a stale entry status.
func mergeStatus(entry models.QueueEntry, result models.SimulationResult) models.SimulationStatus {
	if result.Status.IsTerminal() {
		return result.Status
	}
	if entry.Status == models.SimulationUnknownStatus {
		return result.Status
	}
	return entry.Status
}

// resolveResultUrl asks object storage for a time-limited download url of the
// result artifact. Storage being down degrades the view (no url), it never
// fails the resolution.
func (uc SimulationViewUsecase) resolveResultUrl(
	ctx context.Context,
	result models.SimulationResult,
) *string {
	if result.ResultLocation == nil {
		return nil
	}
	location := *result.ResultLocation

	if cached, ok := uc.signedUrlCache.Get(location); ok {
		return &cached
	}

	bucketUrl, key, err := splitBlobLocation(location)
	if err == nil {
		var signed string
		signed, err = uc.blobRepository.GenerateSignedUrl(ctx, bucketUrl, key)
		if err == nil {
			uc.signedUrlCache.Add(location, signed)
			return &signed
		}
	}

	utils.LoggerFromContext(ctx).WarnContext(ctx,
		"could not sign the result artifact url, serving the view without it",
		"simulation_result_id", result.Id,
		"result_location", location,
		"error", err.Error())
	return nil
}

// splitBlobLocation splits "gs://bucket/path/to/artifact.json" into the
// bucket url and the object key.
func splitBlobLocation(location string) (bucketUrl string, key string, err error) {
	parsed, err := url.Parse(location)
	if err != nil {
		return "", "", errors.Wrapf(err, "invalid result location %s", location)
	}
	if parsed.Scheme == "" || parsed.Host == "" || parsed.Path == "" {
		return "", "", errors.Newf("result location %s is not a bucket url", location)
	}
	return parsed.Scheme + "://" + parsed.Host, strings.TrimPrefix(parsed.Path, "/"), nil
}
