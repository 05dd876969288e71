package client

import (
	"net"

	"github.com/dalbodeule/loco-gate/internal/logging"
	"github.com/dalbodeule/loco-gate/internal/mux"
	"github.com/dalbodeule/loco-gate/internal/protocol"
)

// forward 는 서버가 연 스트림 하나를 로컬 타깃 연결에 이어줍니다.
// 로컬 연결이 실패하면 즉시 스트림을 닫아 공개 측이 매달리지 않게 하고,
// 성공하면 양방향이 끝날 때까지 half-close 를 전파하며 중계합니다.
func (c *Client) forward(st *mux.Stream, log logging.Logger) {
	local, err := net.DialTimeout("tcp", c.cfg.LocalTarget, c.cfg.ConnectTimeout)
	if err != nil {
		log.Warn("local target unreachable", logging.Fields{
			"stream_id":    st.ID(),
			"local_target": c.cfg.LocalTarget,
			"error":        err.Error(),
		})
		_ = st.CloseWithError(protocol.ErrCodeLocalConnect, err.Error())
		return
	}

	log.Debug("stream connected to local target", logging.Fields{
		"stream_id":    st.ID(),
		"local_target": c.cfg.LocalTarget,
	})

	toLocal, toPublic, relayErr := mux.Join(st, local, nil)
	fields := logging.Fields{
		"stream_id": st.ID(),
		"bytes_in":  toLocal,
		"bytes_out": toPublic,
	}
	if relayErr != nil {
		fields["error"] = relayErr.Error()
	}
	log.Debug("stream finished", fields)
}
