package app

import (
	"bufio"
	"fmt"
	"net"
	"time"

	"go1090/internal/adsb"
	"go1090/internal/beast"
)

// runBeastListener accepts Beast-protocol connections on the configured
// address and feeds decoded Mode S frames into the same pipeline the
// RTL-SDR/demod path uses, a second realistic capture format alongside
// raw IQ (spec.md §6 names IQ and hex-line capture; Beast is this
// ecosystem's common third format).
func (app *Application) runBeastListener(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("beast listener: %w", err)
	}
	defer listener.Close()

	go func() {
		<-app.ctx.Done()
		listener.Close()
	}()

	app.logger.WithField("addr", addr).Info("beast capture listener started")

	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-app.ctx.Done():
				return nil
			default:
				app.logger.WithError(err).Error("beast listener accept failed")
				return err
			}
		}
		app.wg.Add(1)
		go func() {
			defer app.wg.Done()
			defer conn.Close()
			app.handleBeastConn(conn)
		}()
	}
}

func (app *Application) handleBeastConn(conn net.Conn) {
	decoder := beast.NewDecoder(app.logger)
	reader := bufio.NewReaderSize(conn, 4096)
	buf := make([]byte, 4096)

	for {
		select {
		case <-app.ctx.Done():
			return
		default:
		}

		n, err := reader.Read(buf)
		if n > 0 {
			messages, decodeErr := decoder.Decode(buf[:n])
			if decodeErr != nil {
				app.logger.WithError(decodeErr).Debug("beast decode failed")
			}
			for _, msg := range messages {
				app.processBeastMessage(msg)
			}
		}
		if err != nil {
			return
		}
	}
}

// processBeastMessage converts one decoded Beast frame into the same raw
// bit buffer shape the demodulator produces and runs it through the
// shared frame/decode/track/filter pipeline.
func (app *Application) processBeastMessage(msg *beast.Message) {
	if msg.MessageType != beast.ModeS && msg.MessageType != beast.ModeSLong {
		return
	}
	if len(msg.Data) == 0 {
		return
	}

	// The Beast MLAT counter advances at 12MHz regardless of the local
	// wall clock, so it's what CPR even/odd pairing should measure frame
	// spacing against (see beast.Message.MLATCounter).
	capture := adsb.CaptureTime{
		Wall:      msg.Timestamp,
		Monotonic: time.Duration(msg.MLATCounter * 1000 / 12),
	}
	app.processFrameBits(msg.Data, capture, nil)
}
