package basestation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"go1090/internal/adsb"
	"go1090/internal/logging"
)

// BaseStation message types.
const (
	SEL = "SEL" // Selection Change
	ID  = "ID"  // New ID
	AIR = "AIR" // New Aircraft
	STA = "STA" // Status Change
	CLK = "CLK" // Click
	MSG = "MSG" // Transmission
)

// BaseStation transmission types.
const (
	TransmissionES_ID_CAT       = 1 // Extended Squitter Aircraft ID and Category
	TransmissionES_SURFACE      = 2 // Extended Squitter Surface Position
	TransmissionES_AIRBORNE     = 3 // Extended Squitter Airborne Position
	TransmissionES_VELOCITY     = 4 // Extended Squitter Airborne Velocity
	TransmissionSURVEILLANCE    = 5 // Surveillance Alt, Squawk change
	TransmissionSURVEILLANCE_ID = 6 // Surveillance ID change
	TransmissionAIR_TO_AIR      = 7 // Air-to-Air Message
	TransmissionALL_CALL        = 8 // All Call Reply
)

// Message is one line of BaseStation/SBS output.
type Message struct {
	MessageType      string
	TransmissionType int
	SessionID        int
	AircraftID       int
	HexIdent         string
	FlightID         int
	DateGenerated    string
	TimeGenerated    string
	DateLogged       string
	TimeLogged       string
	Callsign         string
	Altitude         string
	GroundSpeed      string
	Track            string
	Latitude         string
	Longitude        string
	VerticalRate     string
	Squawk           string
	Alert            string
	Emergency        string
	SPI              string
	IsOnGround       string
}

// Writer renders tracker TrackEvents and filter AnomalyEvents as
// BaseStation CSV lines and appends them to the rotating log file. It's a
// demonstration persistence sink, not a durable store.
type Writer struct {
	logRotator *logging.LogRotator
	logger     *logrus.Logger
	sessionID  int
	aircraftID int
}

// NewWriter creates a new BaseStation writer.
func NewWriter(logRotator *logging.LogRotator, logger *logrus.Logger) *Writer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Writer{
		logRotator: logRotator,
		logger:     logger,
		sessionID:  1,
		aircraftID: 1,
	}
}

// WriteTrackEvent renders one tracker event as a BaseStation line.
func (w *Writer) WriteTrackEvent(ev adsb.TrackEvent) error {
	msg := w.convertTrackEvent(ev)
	if msg == nil {
		return nil
	}
	return w.writeLine(w.formatCSV(msg))
}

// WriteAnomaly renders a filter anomaly as a BaseStation status line.
// BaseStation has no anomaly concept of its own, so anomalies are carried
// as STA lines with the kind folded into the callsign field - readable in
// any SBS consumer without inventing a new wire format.
func (w *Writer) WriteAnomaly(ev adsb.AnomalyEvent) error {
	dateStr, timeStr := splitTimestamp(ev.OccurredAt)
	msg := &Message{
		MessageType:      STA,
		TransmissionType: TransmissionSURVEILLANCE,
		SessionID:        w.sessionID,
		AircraftID:       w.aircraftID,
		HexIdent:         ev.ICAO.String(),
		FlightID:         w.aircraftID,
		DateGenerated:    dateStr,
		TimeGenerated:    timeStr,
		DateLogged:       dateStr,
		TimeLogged:       timeStr,
		Callsign:         string(ev.Kind),
	}
	return w.writeLine(w.formatCSV(msg))
}

func (w *Writer) writeLine(line string) error {
	writer, err := w.logRotator.GetWriter()
	if err != nil {
		return fmt.Errorf("failed to get log writer: %w", err)
	}
	if _, err := writer.Write([]byte(line + "\n")); err != nil {
		return fmt.Errorf("failed to write to log: %w", err)
	}
	return nil
}

func splitTimestamp(t interface{ Format(string) string }) (string, string) {
	return t.Format("2006/01/02"), t.Format("15:04:05.000")
}

func (w *Writer) convertTrackEvent(ev adsb.TrackEvent) *Message {
	state := ev.State
	dateStr, timeStr := splitTimestamp(ev.At)

	base := &Message{
		SessionID:     w.sessionID,
		AircraftID:    w.aircraftID,
		FlightID:      w.aircraftID,
		HexIdent:      ev.ICAO.String(),
		DateGenerated: dateStr,
		TimeGenerated: timeStr,
		DateLogged:    dateStr,
		TimeLogged:    timeStr,
	}

	switch ev.Kind {
	case adsb.EventNewAircraft:
		base.MessageType = AIR
		return base

	case adsb.EventSightingUpdate:
		base.MessageType = MSG
		base.TransmissionType = TransmissionES_ID_CAT
		base.Callsign = strings.TrimSpace(state.Callsign)
		return base

	case adsb.EventPositionUpdate:
		base.MessageType = MSG
		base.TransmissionType = TransmissionES_AIRBORNE
		if state.HasAltitude {
			base.Altitude = strconv.Itoa(state.AltitudeFt)
		}
		base.Latitude = fmt.Sprintf("%.6f", state.Lat)
		base.Longitude = fmt.Sprintf("%.6f", state.Lon)
		if state.Squawk != 0 {
			base.Squawk = fmt.Sprintf("%04d", state.Squawk)
		}
		return base

	case adsb.EventAircraftUpdate:
		base.MessageType = MSG
		base.TransmissionType = TransmissionES_VELOCITY
		if state.GroundSpeedKt > 0 {
			base.GroundSpeed = fmt.Sprintf("%.0f", state.GroundSpeedKt)
		}
		if state.HasHeading {
			base.Track = fmt.Sprintf("%.1f", state.HeadingDeg)
		}
		if state.HasVerticalRate {
			base.VerticalRate = strconv.Itoa(state.VerticalRateFpm)
		}
		return base
	}

	return nil
}

func (w *Writer) formatCSV(msg *Message) string {
	fields := []string{
		msg.MessageType,
		strconv.Itoa(msg.TransmissionType),
		strconv.Itoa(msg.SessionID),
		strconv.Itoa(msg.AircraftID),
		msg.HexIdent,
		strconv.Itoa(msg.FlightID),
		msg.DateGenerated,
		msg.TimeGenerated,
		msg.DateLogged,
		msg.TimeLogged,
		msg.Callsign,
		msg.Altitude,
		msg.GroundSpeed,
		msg.Track,
		msg.Latitude,
		msg.Longitude,
		msg.VerticalRate,
		msg.Squawk,
		msg.Alert,
		msg.Emergency,
		msg.SPI,
		msg.IsOnGround,
	}
	return strings.Join(fields, ",")
}
