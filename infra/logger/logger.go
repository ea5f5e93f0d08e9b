package logger

import corelogger "github.com/fengshan-hs/timetable/core/logger"

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger implements Logger with no-op methods.
type NopLogger = corelogger.NopLogger

// Setter mirrors the core logger setter.
type Setter = corelogger.Setter
