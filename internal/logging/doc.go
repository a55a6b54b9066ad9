// Package logging provides the structured debug log of the editor.
//
// Entries are JSON lines written through log/slog to cairos.log in the state
// directory. The file is rotated by size; cairos.log.1 is the most recent
// backup.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger(dir, "INFO", logging.DefaultRotationConfig())
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	docLog := logger.WithDocument("sites.csv")
//	docLog.Info("saved", "rows", 4)
//
// Output:
//
//	{"time":"...","level":"INFO","msg":"saved","document":"sites.csv","rows":4}
//
// When logging is disabled, use [NopLogger]; every method is then a no-op.
package logging
