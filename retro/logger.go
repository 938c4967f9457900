package retro

/*
#include <stdlib.h>
#include "libretro.h"
#include "cfuncs.h"
*/
import "C"

import (
	"unsafe"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	retroglue "github.com/retroglue/retroglue"
)

var frontendLogger *zap.Logger

// hookFrontendLog asks the frontend for its log interface and, when it has
// one, routes the bridge logger through it so core log lines show up in the
// frontend's own sink. Without one the logger stays as configured (no-op by
// default).
func hookFrontendLog(env retroglue.Environment) {
	// read the interface record on the cgo side so the function pointer
	// stays typed as retro_log_printf_t from the moment it arrives
	var cb C.struct_retro_log_callback
	if !env.Get(retroglue.EnvGetLogInterface, unsafe.Pointer(&cb)) || cb.log == nil {
		return
	}
	core := &frontendCore{log: cb.log, enc: frontendEncoder()}
	frontendLogger = zap.New(core)
	retroglue.SetLogger(frontendLogger)
}

func unhookFrontendLog() {
	frontendLogger = nil
	retroglue.SetLogger(zap.NewNop())
}

// FrontendLogger returns the logger writing through the frontend's log
// callback, for cores that want their own log lines in the frontend's sink.
// It is a no-op logger until retro_init runs against a frontend that grants
// GET_LOG_INTERFACE.
func FrontendLogger() *zap.Logger {
	if frontendLogger == nil {
		return zap.NewNop()
	}
	return frontendLogger
}

func frontendEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	// the frontend prefixes level and timestamp itself
	cfg.TimeKey = ""
	cfg.LevelKey = ""
	return zapcore.NewConsoleEncoder(cfg)
}

// frontendCore is a zapcore.Core that formats each entry to one line and
// hands it to the frontend's retro_log_printf_t.
type frontendCore struct {
	log    C.retro_log_printf_t
	enc    zapcore.Encoder
	fields []zapcore.Field
}

func (c *frontendCore) Enabled(zapcore.Level) bool { return true }

func (c *frontendCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &frontendCore{log: c.log, enc: c.enc.Clone()}
	clone.fields = append(append([]zapcore.Field(nil), c.fields...), fields...)
	return clone
}

func (c *frontendCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	return ce.AddCore(ent, c)
}

func (c *frontendCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	buf, err := c.enc.EncodeEntry(ent, append(c.fields, fields...))
	if err != nil {
		return err
	}
	defer buf.Free()

	line := buf.String()
	for len(line) > 0 && line[len(line)-1] == '\n' {
		line = line[:len(line)-1]
	}

	msg := C.CString(line)
	defer C.free(unsafe.Pointer(msg))
	C.call_log_cb(c.log, C.int(retroLevel(ent.Level)), msg)
	return nil
}

func (c *frontendCore) Sync() error { return nil }

func retroLevel(level zapcore.Level) int {
	switch {
	case level <= zapcore.DebugLevel:
		return int(C.RETRO_LOG_DEBUG)
	case level == zapcore.InfoLevel:
		return int(C.RETRO_LOG_INFO)
	case level == zapcore.WarnLevel:
		return int(C.RETRO_LOG_WARN)
	default:
		return int(C.RETRO_LOG_ERROR)
	}
}
