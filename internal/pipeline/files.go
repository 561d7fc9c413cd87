package pipeline

import (
	"fmt"
	"os"

	"huffman_codec_go/pkg/logger"
)

// ArgumentError reports a command invoked with the wrong number of arguments.
type ArgumentError struct {
	Argc  int
	Usage string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid arguments (argc=%d), usage: %s", e.Argc, e.Usage)
}

// CheckArgs expects the program name followed by exactly three file names.
func CheckArgs(module string, args []string, usage string, log logger.Logger) error {
	if len(args) == 4 {
		return nil
	}
	log.ErrorEvent(module, "invalid_arguments", logger.F("argc", len(args)))
	prog := module
	if len(args) > 0 {
		prog = args[0]
	}
	return &ArgumentError{Argc: len(args), Usage: prog + " " + usage}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// EncodeFiles reads inFn and writes its codebook to cbFn and its encoded form to encFn.
func EncodeFiles(inFn, cbFn, encFn string, opts Options) (err error) {
	log := opts.log()
	log.Event("encoder", "start", logger.F("input_file", inFn), logger.F("cb_fn", cbFn), logger.F("enc_fn", encFn))
	defer func() {
		if err != nil {
			log.ErrorEvent("encoder", "finish", logger.F("status", status(err)), logger.F("error", err))
			return
		}
		log.Event("encoder", "finish", logger.F("status", status(err)))
	}()

	input, err := os.ReadFile(inFn)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	enc, err := EncodeBytes(inFn, input, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cbFn, enc.CodebookText(), 0o644); err != nil {
		return fmt.Errorf("write codebook: %w", err)
	}
	if err := os.WriteFile(encFn, enc.ContainerBytes(), 0o644); err != nil {
		return fmt.Errorf("write encoded file: %w", err)
	}
	return nil
}

// DecodeFiles reverses EncodeFiles, writing the recovered bytes to outFn.
func DecodeFiles(encFn, cbFn, outFn string, opts Options) (err error) {
	log := opts.log()
	log.Event("decoder", "start", logger.F("input_encoded", encFn), logger.F("input_codebook", cbFn), logger.F("output_file", outFn))

	var decoded []byte
	defer func() {
		fields := []logger.Field{
			logger.F("input_encoded", encFn),
			logger.F("input_codebook", cbFn),
			logger.F("output_file", outFn),
			logger.F("num_decoded_symbols", len(decoded)),
			logger.F("status", status(err)),
		}
		if err != nil {
			log.ErrorEvent("metrics", "summary", fields...)
			log.ErrorEvent("decoder", "finish", logger.F("status", status(err)), logger.F("error", err))
			return
		}
		log.Event("metrics", "summary", fields...)
		log.Event("decoder", "finish", logger.F("status", status(err)))
	}()

	encoded, err := os.ReadFile(encFn)
	if err != nil {
		return fmt.Errorf("read encoded file: %w", err)
	}
	codebook, err := os.ReadFile(cbFn)
	if err != nil {
		return fmt.Errorf("read codebook: %w", err)
	}
	decoded, err = DecodeBytes(encoded, codebook)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outFn, decoded, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
