package service

import (
	"context"
	"sort"

	"github.com/edgeap/edgeap/manager/domain"
	"github.com/edgeap/edgeap/pkg/logger"
)

// CheckDrift compares the tracker with the services the engine runs. It
// only reports; the tracker is rebuilt by a restore.
func (svc *Service) CheckDrift(ctx context.Context) (*domain.DriftReport, error) {
	if svc.Engine == nil {
		return nil, domain.ErrNoClient
	}
	infos, err := svc.Engine.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	engine := make(map[string]*domain.ServiceInfo, len(infos))
	for _, info := range infos {
		engine[info.ID] = info
	}

	report := &domain.DriftReport{}
	tracked := make(map[string]struct{})
	snap := svc.State.Snapshot()
	report.TrackerDigest = snap.Digest
	for _, node := range snap.Nodes {
		for _, s := range node.Services {
			tracked[s.ID] = struct{}{}
			info, ok := engine[s.ID]
			if !ok {
				report.MissingFromEngine = append(report.MissingFromEngine, s.ID)
				continue
			}
			if info.PublishedPort != s.Port {
				report.PortMismatch = append(report.PortMismatch, s.ID)
			}
		}
	}
	for id, info := range engine {
		if _, ok := tracked[id]; ok {
			continue
		}
		if info.Labels[domain.ServiceLabelManaged] == "true" {
			report.Untracked = append(report.Untracked, id)
		}
	}
	sort.Strings(report.MissingFromEngine)
	sort.Strings(report.Untracked)
	sort.Strings(report.PortMismatch)
	report.InSync = len(report.MissingFromEngine) == 0 && len(report.Untracked) == 0 && len(report.PortMismatch) == 0
	if !report.InSync {
		logger.Logger(ctx).Warn().Msgf("tracker drift: missing=%v untracked=%v port_mismatch=%v",
			report.MissingFromEngine, report.Untracked, report.PortMismatch)
	}
	return report, nil
}
