package websocket

import (
	"time"

	"github.com/gorilla/websocket"
)

// Deadlines for the monitor stream. Reads are bounded by the client's
// ping cadence; a monitor that stays silent past readWait is treated as
// gone and the relay loop ends.
const (
	writeWait = 10 * time.Second
	readWait  = 5 * time.Minute
)

// WriteTyped sends one typed event payload, bounding the write so a
// stalled monitor cannot block the relay loop.
func WriteTyped(conn *websocket.Conn, v interface{}) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(v)
}

// WriteError reports a protocol-level failure to the client without
// closing the stream.
func WriteError(conn *websocket.Conn, errMsg string) error {
	return WriteTyped(conn, ErrorResponse{
		Event: EventError,
		Error: errMsg,
	})
}

// ReadJSON reads the next client message. Each successful read arms a
// fresh deadline, so every ping extends the connection's lease by
// another readWait.
func ReadJSON(conn *websocket.Conn, v interface{}) error {
	if err := conn.SetReadDeadline(time.Now().Add(readWait)); err != nil {
		return err
	}
	return conn.ReadJSON(v)
}
