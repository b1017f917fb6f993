package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/edgeap/edgeap/manager/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func (r *repo) InsertEvent(ctx context.Context, event *domain.PlacementEvent) error {
	if event == nil {
		return domain.ErrNilQueryInput
	}
	if event.ID.IsZero() {
		event.ID = bson.NewObjectID()
	}
	if event.CreatedTime == 0 {
		event.CreatedTime = time.Now().UnixMilli()
	}
	_, err := r.db.Collection(placementEventCollection).InsertOne(ctx, event)
	if err != nil {
		return fmt.Errorf("insert placement event, err: %w", err)
	}
	return nil
}

// QueryEvents returns the newest matching events first.
func (r *repo) QueryEvents(ctx context.Context, opt *domain.QueryEventOptions) error {
	if opt == nil {
		return domain.ErrNilQueryInput
	}

	filter := bson.M{}
	if len(opt.Actions) > 0 {
		filter["action"] = bson.M{"$in": opt.Actions}
	}
	if len(opt.ServiceIDs) > 0 {
		filter["serviceID"] = bson.M{"$in": opt.ServiceIDs}
	}
	if opt.NodeAddress != "" {
		filter["nodeAddress"] = opt.NodeAddress
	}
	findOpts := options.Find().SetSort(bson.D{{Key: "createdTime", Value: -1}, {Key: "_id", Value: -1}})
	if opt.Limit > 0 {
		findOpts.SetLimit(int64(opt.Limit))
	}

	cursor, err := r.db.Collection(placementEventCollection).Find(ctx, filter, findOpts)
	if err != nil {
		return fmt.Errorf("find placement events, err: %w", err)
	}
	var result []*domain.PlacementEvent
	if err := cursor.All(ctx, &result); err != nil {
		return fmt.Errorf("decode placement events, err: %w", err)
	}
	opt.Result = result
	return nil
}
