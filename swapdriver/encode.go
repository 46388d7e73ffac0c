package swapdriver

import (
	"bytes"
	"encoding/binary"
	"io"
	"time"

	"github.com/go-errors/errors"
)

// encodeState serialises a State to bytes: a tag byte followed by the
// variant's fields in declaration order, each length-prefixed where
// variable-sized.
func encodeState(s State) ([]byte, error) {
	var buf bytes.Buffer
	if err := buf.WriteByte(byte(s.Kind)); err != nil {
		return nil, err
	}

	switch s.Kind {
	case KindCreated:
		if err := writeCreated(&buf, *s.Created); err != nil {
			return nil, err
		}
	case KindInitialized:
		if err := writeCreated(&buf, s.Initialized.Created); err != nil {
			return nil, err
		}
		if _, err := buf.Write(s.Initialized.EscrowAddress[:]); err != nil {
			return nil, err
		}
	case KindDleqVerified:
		if err := writeCreated(&buf, s.DleqVerified.Created); err != nil {
			return nil, err
		}
		if _, err := buf.Write(s.DleqVerified.EscrowAddress[:]); err != nil {
			return nil, err
		}
	case KindUnlocked:
		if err := writeString(&buf, s.Unlocked.SwapID); err != nil {
			return nil, err
		}
		if err := writeString(&buf, s.Unlocked.UnlockTx); err != nil {
			return nil, err
		}
	case KindRefunded:
		if err := writeString(&buf, s.Refunded.SwapID); err != nil {
			return nil, err
		}
		if err := writeString(&buf, s.Refunded.Reason); err != nil {
			return nil, err
		}
		if err := writeString(&buf, s.Refunded.RefundTx); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Errorf("swapdriver: cannot encode state with kind %v", s.Kind)
	}

	return buf.Bytes(), nil
}

func decodeState(b []byte) (State, error) {
	r := bytes.NewReader(b)
	kindByte, err := r.ReadByte()
	if err != nil {
		return State{}, err
	}
	kind := Kind(kindByte)

	switch kind {
	case KindCreated:
		c, err := readCreated(r)
		if err != nil {
			return State{}, err
		}
		return State{Kind: kind, Created: &c}, nil

	case KindInitialized, KindDleqVerified:
		c, err := readCreated(r)
		if err != nil {
			return State{}, err
		}
		var escrow [32]byte
		if _, err := io.ReadFull(r, escrow[:]); err != nil {
			return State{}, err
		}
		initialized := &Initialized{Created: c, EscrowAddress: escrow}
		if kind == KindInitialized {
			return State{Kind: kind, Initialized: initialized}, nil
		}
		return State{Kind: kind, DleqVerified: &DleqVerified{Initialized: *initialized}}, nil

	case KindUnlocked:
		swapID, err := readString(r)
		if err != nil {
			return State{}, err
		}
		tx, err := readString(r)
		if err != nil {
			return State{}, err
		}
		return State{Kind: kind, Unlocked: &Unlocked{SwapID: swapID, UnlockTx: tx}}, nil

	case KindRefunded:
		swapID, err := readString(r)
		if err != nil {
			return State{}, err
		}
		reason, err := readString(r)
		if err != nil {
			return State{}, err
		}
		tx, err := readString(r)
		if err != nil {
			return State{}, err
		}
		return State{Kind: kind, Refunded: &Refunded{SwapID: swapID, Reason: reason, RefundTx: tx}}, nil

	default:
		return State{}, errors.Errorf("swapdriver: unknown state kind byte %d", kindByte)
	}
}

func writeCreated(w io.Writer, c Created) error {
	if err := writeString(w, c.SwapID); err != nil {
		return err
	}
	if _, err := w.Write(c.Hashlock[:]); err != nil {
		return err
	}
	return binary.Write(w, binary.BigEndian, c.LockUntil.Unix())
}

func readCreated(r io.Reader) (Created, error) {
	swapID, err := readString(r)
	if err != nil {
		return Created{}, err
	}
	var hashlock [32]byte
	if _, err := io.ReadFull(r, hashlock[:]); err != nil {
		return Created{}, err
	}
	var unixSec int64
	if err := binary.Read(r, binary.BigEndian, &unixSec); err != nil {
		return Created{}, err
	}
	return Created{
		SwapID:    swapID,
		Hashlock:  hashlock,
		LockUntil: time.Unix(unixSec, 0).UTC(),
	}, nil
}

func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.BigEndian, uint16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader) (string, error) {
	var n uint16
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
