package domain

import "go.mongodb.org/mongo-driver/v2/bson"

// PlacementEvent records the outcome of one Deploy or Teardown.
type PlacementEvent struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Action      EventAction   `bson:"action" json:"action"`
	ServiceID   string        `bson:"serviceID,omitempty" json:"service_id,omitempty"`
	NodeAddress string        `bson:"nodeAddress,omitempty" json:"ip,omitempty"`
	Port        int           `bson:"port,omitempty" json:"port,omitempty"`
	Image       string        `bson:"image,omitempty" json:"image,omitempty"`
	Protocol    Protocol      `bson:"protocol,omitempty" json:"protocol,omitempty"`
	Success     bool          `bson:"success" json:"success"`
	FailureMsg  string        `bson:"failureMsg,omitempty" json:"failure_msg,omitempty"`
	RemoteAddr  string        `bson:"remoteAddr,omitempty" json:"remote_addr,omitempty"`
	CreatedTime int64         `bson:"createdTime,omitempty" json:"created_time"`
}

type QueryEventOptions struct {
	Actions     []EventAction
	ServiceIDs  []string
	NodeAddress string
	Limit       int
	Result      []*PlacementEvent
}
