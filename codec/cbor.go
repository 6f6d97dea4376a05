// Package codec is the single place where values are turned into bytes,
// for the channel store and for the channel service wire format.
package codec

import (
	"github.com/fxamacker/cbor/v2"
)

// Name is the gRPC content subtype of the CBOR codec.
const Name = "cbor"

// encMode uses Core Deterministic Encoding: the same value always
// produces the same bytes.
var encMode cbor.EncMode

// decMode ignores unknown fields so older readers accept newer records.
var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// GRPCCodec implements google.golang.org/grpc/encoding.Codec.
type GRPCCodec struct{}

func (GRPCCodec) Marshal(v any) ([]byte, error) {
	return Marshal(v)
}

func (GRPCCodec) Unmarshal(data []byte, v any) error {
	return Unmarshal(data, v)
}

func (GRPCCodec) Name() string {
	return Name
}
