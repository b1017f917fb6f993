package dispatcher

import (
	"encoding/json"
	"strings"

	"github.com/edgeap/edgeap/manager/domain"
	"github.com/edgeap/edgeap/manager/service"
)

const (
	RespSuccess = 0
	RespFailure = -1
)

// DeployRequest is the wire form of a deploy. Pointer fields tell a missing
// field apart from a zero value.
type DeployRequest struct {
	Image           *string `json:"image"`
	ApplicationPort *int    `json:"application_port"`
	Protocol        *string `json:"protocol"`
}

type DeployResponse struct {
	RespCode   int    `json:"resp-code"`
	ServiceID  string `json:"service_id,omitempty"`
	IP         string `json:"ip,omitempty"`
	Port       int    `json:"port,omitempty"`
	FailureMsg string `json:"failure-msg,omitempty"`
}

type TeardownRequest struct {
	IP        *string `json:"ip"`
	ServiceID *string `json:"service_id"`
	Port      *int    `json:"port"`
}

type TeardownResponse struct {
	RespCode   int    `json:"resp-code"`
	FailureMsg string `json:"failure-msg,omitempty"`
}

func invalid(missing []string) string {
	return service.MsgInvalidRequest + ": missing " + strings.Join(missing, ", ")
}

func decodeDeploy(raw json.RawMessage) (*domain.DeployRequest, string) {
	var req DeployRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, service.MsgInvalidRequest
	}
	var missing []string
	if req.Image == nil {
		missing = append(missing, "image")
	}
	if req.ApplicationPort == nil {
		missing = append(missing, "application_port")
	}
	if req.Protocol == nil {
		missing = append(missing, "protocol")
	}
	if len(missing) > 0 {
		return nil, invalid(missing)
	}
	return &domain.DeployRequest{
		Image:           *req.Image,
		ApplicationPort: *req.ApplicationPort,
		Protocol:        domain.Protocol(strings.ToLower(*req.Protocol)),
	}, ""
}

func decodeTeardown(raw json.RawMessage) (*domain.TeardownRequest, string) {
	var req TeardownRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, service.MsgInvalidRequest
	}
	var missing []string
	if req.IP == nil {
		missing = append(missing, "ip")
	}
	if req.ServiceID == nil {
		missing = append(missing, "service_id")
	}
	if req.Port == nil {
		missing = append(missing, "port")
	}
	if len(missing) > 0 {
		return nil, invalid(missing)
	}
	return &domain.TeardownRequest{
		NodeAddress: *req.IP,
		ServiceID:   *req.ServiceID,
		Port:        *req.Port,
	}, ""
}
