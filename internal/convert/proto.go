// Package convert maps vault and service types to daemon protobuf messages.
package convert

import (
	"time"

	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	pb "github.com/and161185/keyvault/gen/go/keyvault/v1"
	"github.com/and161185/keyvault/internal/model"
	"github.com/and161185/keyvault/internal/service"
	"github.com/and161185/keyvault/internal/vault"
)

// --- helpers ---

func ts(t time.Time) *timestamppb.Timestamp {
	if t.IsZero() {
		return nil
	}
	return timestamppb.New(t)
}

// ToProtoUnlockResponse converts an unlock outcome.
func ToProtoUnlockResponse(o service.UnlockOutcome) *pb.UnlockResponse {
	return &pb.UnlockResponse{
		Token:     o.Session.Token,
		ExpiresAt: ts(o.Session.ExpiresAt),
		UserId:    o.UserID,
		PublicKey: o.PublicKey,
		Created:   o.Created,
		Warnings:  o.Warnings,
	}
}

// ToProtoStatusResponse converts a vault snapshot.
func ToProtoStatusResponse(s vault.Snapshot) *pb.StatusResponse {
	return &pb.StatusResponse{
		State:            s.State.String(),
		VaultId:          s.VaultID,
		Initialized:      s.Initialized,
		UserId:           s.UserID,
		DeviceId:         s.DeviceID,
		DeviceName:       s.DeviceName,
		Platform:         s.Platform,
		CurrentPublicKey: s.CurrentPublicKey,
		PreviousKeypairs: int32(s.PreviousKeypairs),
		Rotations:        int32(s.Rotations),
		Syncs:            int32(s.Syncs),
		IdleTimeout:      durationpb.New(s.Settings.IdleTimeout),
		LastActivity:     ts(s.LastActivity),
		LastLockReason:   string(s.LastLockReason),
		LastSyncedAt:     ts(s.LastSyncedAt),
		LastModified:     ts(s.LastModified),
	}
}

// ToProtoRotation converts one rotation record. Device ids stay local.
func ToProtoRotation(r model.RotationRecord) *pb.Rotation {
	return &pb.Rotation{
		RotationId:        r.RotationID,
		Timestamp:         ts(r.Timestamp),
		Reason:            r.Reason,
		DeviceName:        r.DeviceName,
		PreviousPublicKey: r.PreviousPublicKey,
		NewPublicKey:      r.NewPublicKey,
		Success:           r.Success,
	}
}

// ToProtoHistoryResponse converts rotation and sync history. Sync signatures are not exposed.
func ToProtoHistoryResponse(h vault.History) *pb.HistoryResponse {
	out := &pb.HistoryResponse{
		Rotations: make([]*pb.Rotation, 0, len(h.Rotations)),
		Syncs:     make([]*pb.Sync, 0, len(h.Syncs)),
	}
	for _, r := range h.Rotations {
		out.Rotations = append(out.Rotations, ToProtoRotation(r))
	}
	for _, s := range h.Syncs {
		out.Syncs = append(out.Syncs, &pb.Sync{
			SyncId:            s.SyncID,
			Timestamp:         ts(s.Timestamp),
			SourceDeviceName:  s.SourceDeviceName,
			KeypairsUpdated:   int32(s.KeypairsUpdated),
			KeypairsMerged:    int32(s.KeypairsMerged),
			RotationsAdded:    int32(s.RotationsAdded),
			ConflictsResolved: int32(s.ConflictsResolved),
		})
	}
	return out
}

// ToProtoImportResponse converts an import summary.
func ToProtoImportResponse(r vault.ImportResult) *pb.ImportResponse {
	return &pb.ImportResponse{
		SourceDeviceName:  r.SourceDeviceName,
		ExportedAt:        ts(r.ExportedAt),
		CurrentPublicKey:  r.CurrentPublicKey,
		KeyChanged:        r.KeyChanged,
		KeypairsUpdated:   int32(r.Stats.KeypairsUpdated),
		KeypairsMerged:    int32(r.Stats.KeypairsMerged),
		RotationsAdded:    int32(r.Stats.RotationsAdded),
		ConflictsResolved: int32(r.Stats.ConflictsResolved),
	}
}

// ToProtoEvent converts a lifecycle event.
func ToProtoEvent(e vault.Event) *pb.Event {
	return &pb.Event{
		Type:          string(e.Type),
		PreviousState: e.PreviousState.String(),
		NewState:      e.NewState.String(),
		Reason:        string(e.Reason),
		Timestamp:     ts(e.Timestamp),
	}
}
