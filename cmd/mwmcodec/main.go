// mwmcodec is a small CLI front-end over the mwmcodec package: it
// encodes and decodes the restriction, traffic-keys, and
// traffic-values wire formats, and combines a known coloring against
// a full key list.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/sergeyt/mwmcodec"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 3 {
		printUsage()
		return nil
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	group, sub, rest := os.Args[1], os.Args[2], os.Args[3:]
	switch group {
	case "restrictions":
		return runRestrictions(logger, sub, rest)
	case "keys":
		return runKeys(logger, sub, rest)
	case "values":
		return runValues(logger, sub, rest)
	case "combine":
		return runCombine(logger, os.Args[2:])
	case "--help", "-h":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command group %q", group)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `mwmcodec — encode/decode turn-restriction and traffic-coloring payloads.

Usage:
  mwmcodec restrictions encode --in restrictions.json --out restrictions.bin
  mwmcodec restrictions decode --in restrictions.bin --out restrictions.json
  mwmcodec keys encode --in keys.json --out keys.bin
  mwmcodec keys decode --in keys.bin --out keys.json
  mwmcodec values encode --in values.json --out values.bin
  mwmcodec values decode --in values.bin --out values.json
  mwmcodec combine --keys keys.json --known known.json --out combined.json
`)
}

func flagSetFor(name string) (*pflag.FlagSet, *string, *string) {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	in := flagSet.String("in", "", "input file path")
	out := flagSet.String("out", "", "output file path")
	return flagSet, in, out
}

// restrictionsFile is the JSON shape accepted/produced by
// `restrictions encode`/`decode`: a flat list plus the split index
// §6.1 requires between the No and Only groups.
type restrictionsFile struct {
	SplitIndex   int               `json:"splitIndex"`
	Restrictions []restrictionJSON `json:"restrictions"`
}

type restrictionJSON struct {
	Type       mwmcodec.RestrictionType `json:"type"`
	FeatureIds []uint32                 `json:"featureIds"`
}

func runRestrictions(logger *slog.Logger, sub string, args []string) error {
	flagSet, in, out := flagSetFor("restrictions " + sub)
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if *in == "" || *out == "" {
		return fmt.Errorf("restrictions %s requires --in and --out", sub)
	}

	switch sub {
	case "encode":
		raw, err := os.ReadFile(*in)
		if err != nil {
			return err
		}
		var doc restrictionsFile
		if err := json.Unmarshal(raw, &doc); err != nil {
			return err
		}
		restrictions := make([]mwmcodec.Restriction, len(doc.Restrictions))
		for i, r := range doc.Restrictions {
			restrictions[i] = mwmcodec.Restriction{Type: r.Type, FeatureIds: r.FeatureIds}
		}

		w, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer w.Close()
		if err := mwmcodec.SerializeRestrictions(w, restrictions, doc.SplitIndex); err != nil {
			return err
		}
		logger.Info("encoded restrictions", "count", len(restrictions), "out", *out)
		return nil

	case "decode":
		r, err := os.Open(*in)
		if err != nil {
			return err
		}
		defer r.Close()

		header, err := mwmcodec.ReadRestrictionHeader(r)
		if err != nil {
			return err
		}
		restrictions, err := mwmcodec.DeserializeRestrictions(r, header)
		if err != nil {
			return err
		}

		doc := restrictionsFile{SplitIndex: int(header.NoCount), Restrictions: make([]restrictionJSON, len(restrictions))}
		for i, r := range restrictions {
			doc.Restrictions[i] = restrictionJSON{Type: r.Type, FeatureIds: r.FeatureIds}
		}
		encoded, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		logger.Info("decoded restrictions", "count", len(restrictions), "in", *in)
		return os.WriteFile(*out, encoded, 0o644)

	default:
		return fmt.Errorf("unknown restrictions subcommand %q", sub)
	}
}

func runKeys(logger *slog.Logger, sub string, args []string) error {
	flagSet, in, out := flagSetFor("keys " + sub)
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if *in == "" || *out == "" {
		return fmt.Errorf("keys %s requires --in and --out", sub)
	}

	switch sub {
	case "encode":
		raw, err := os.ReadFile(*in)
		if err != nil {
			return err
		}
		var keys []mwmcodec.RoadSegmentId
		if err := json.Unmarshal(raw, &keys); err != nil {
			return err
		}
		data, err := mwmcodec.SerializeTrafficKeys(keys)
		if err != nil {
			return err
		}
		logger.Info("encoded traffic keys", "count", len(keys), "out", *out)
		return os.WriteFile(*out, data, 0o644)

	case "decode":
		data, err := os.ReadFile(*in)
		if err != nil {
			return err
		}
		keys, err := mwmcodec.DeserializeTrafficKeys(data)
		if err != nil {
			return err
		}
		encoded, err := json.MarshalIndent(keys, "", "  ")
		if err != nil {
			return err
		}
		logger.Info("decoded traffic keys", "count", len(keys), "in", *in)
		return os.WriteFile(*out, encoded, 0o644)

	default:
		return fmt.Errorf("unknown keys subcommand %q", sub)
	}
}

func runValues(logger *slog.Logger, sub string, args []string) error {
	flagSet, in, out := flagSetFor("values " + sub)
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if *in == "" || *out == "" {
		return fmt.Errorf("values %s requires --in and --out", sub)
	}

	switch sub {
	case "encode":
		raw, err := os.ReadFile(*in)
		if err != nil {
			return err
		}
		var values []mwmcodec.SpeedGroup
		if err := json.Unmarshal(raw, &values); err != nil {
			return err
		}
		data, err := mwmcodec.SerializeTrafficValues(values)
		if err != nil {
			return err
		}
		logger.Info("encoded traffic values", "count", len(values), "out", *out)
		return os.WriteFile(*out, data, 0o644)

	case "decode":
		data, err := os.ReadFile(*in)
		if err != nil {
			return err
		}
		values, err := mwmcodec.DeserializeTrafficValues(data)
		if err != nil {
			return err
		}
		encoded, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return err
		}
		logger.Info("decoded traffic values", "count", len(values), "in", *in)
		return os.WriteFile(*out, encoded, 0o644)

	default:
		return fmt.Errorf("unknown values subcommand %q", sub)
	}
}

func runCombine(logger *slog.Logger, args []string) error {
	flagSet := pflag.NewFlagSet("combine", pflag.ContinueOnError)
	keysPath := flagSet.String("keys", "", "path to the JSON list of all RoadSegmentId keys")
	knownPath := flagSet.String("known", "", "path to a JSON list of {key, group} entries giving known speed groups")
	out := flagSet.String("out", "", "output file path")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if *keysPath == "" || *knownPath == "" || *out == "" {
		return fmt.Errorf("combine requires --keys, --known, and --out")
	}

	rawKeys, err := os.ReadFile(*keysPath)
	if err != nil {
		return err
	}
	var allKeys []mwmcodec.RoadSegmentId
	if err := json.Unmarshal(rawKeys, &allKeys); err != nil {
		return err
	}

	rawKnown, err := os.ReadFile(*knownPath)
	if err != nil {
		return err
	}
	var knownEntries []struct {
		Key   mwmcodec.RoadSegmentId `json:"key"`
		Group mwmcodec.SpeedGroup    `json:"group"`
	}
	if err := json.Unmarshal(rawKnown, &knownEntries); err != nil {
		return err
	}
	known := make(mwmcodec.Coloring, len(knownEntries))
	for _, e := range knownEntries {
		known[e.Key] = e.Group
	}

	combined, summary, err := mwmcodec.CombineColorings(allKeys, known)
	if err != nil {
		return err
	}
	logger.Info("combined colorings", "known", summary.Known, "unknown", summary.Unknown)

	type combinedEntry struct {
		Key   mwmcodec.RoadSegmentId `json:"key"`
		Group mwmcodec.SpeedGroup    `json:"group"`
	}
	result := make([]combinedEntry, 0, len(combined))
	for _, k := range allKeys {
		result = append(result, combinedEntry{Key: k, Group: combined[k]})
	}
	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(*out, encoded, 0o644)
}
