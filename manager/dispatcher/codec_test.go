package dispatcher

import (
	"testing"

	"github.com/edgeap/edgeap/manager/domain"
	"github.com/edgeap/edgeap/manager/service"
	"github.com/stretchr/testify/assert"
)

func TestDecodeDeploy(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want *domain.DeployRequest
		msg  string
	}{
		{
			name: "complete",
			raw:  `{"image":"app:v1","application_port":8080,"protocol":"TCP"}`,
			want: &domain.DeployRequest{Image: "app:v1", ApplicationPort: 8080, Protocol: domain.ProtocolTCP},
		},
		{
			name: "zero values are present",
			raw:  `{"image":"","application_port":0,"protocol":""}`,
			want: &domain.DeployRequest{},
		},
		{name: "null field", raw: `{"image":null,"application_port":1,"protocol":"udp"}`, msg: "Invalid request: missing image"},
		{name: "empty object", raw: `{}`, msg: "Invalid request: missing image, application_port, protocol"},
		{name: "not an object", raw: `[1,2]`, msg: service.MsgInvalidRequest},
		{name: "wrong type", raw: `{"image":1}`, msg: service.MsgInvalidRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, msg := decodeDeploy([]byte(tc.raw))
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.msg, msg)
		})
	}
}

func TestDecodeTeardown(t *testing.T) {
	got, msg := decodeTeardown([]byte(`{"ip":"10.0.0.5","service_id":"abc","port":50001,"extra":true}`))
	assert.Empty(t, msg)
	assert.Equal(t, &domain.TeardownRequest{NodeAddress: "10.0.0.5", ServiceID: "abc", Port: 50001}, got)

	got, msg = decodeTeardown([]byte(`{"ip":"10.0.0.5"}`))
	assert.Nil(t, got)
	assert.Equal(t, "Invalid request: missing service_id, port", msg)
}
