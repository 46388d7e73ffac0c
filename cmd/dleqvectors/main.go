// dleqvectors generates and verifies JSON DLEQ test fixtures in the
// testvectors schema, for implementations checking interoperability.
// The dleq package's own tests build their transcripts in memory and
// do not read these files.
package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/ioutil"
	"os"

	"filippo.io/edwards25519"
	"github.com/urfave/cli"

	"github.com/lightninglabs/xmrswap/curveutil"
	"github.com/lightninglabs/xmrswap/dleq"
	"github.com/lightninglabs/xmrswap/testvectors"
)

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[dleqvectors] %v\n", err)
	os.Exit(1)
}

var generateCommand = cli.Command{
	Name:      "generate",
	Usage:     "produce a fresh honest transcript vector",
	ArgsUsage: "output-file",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "secret",
			Usage: "hex-encoded 32 byte secret; a random one is used if omitted",
		},
		cli.BoolFlag{
			Name:  "omit-secret",
			Usage: "do not embed the demo secret in the fixture",
		},
	},
	Action: generateVector,
}

func generateVector(ctx *cli.Context) error {
	outPath := ctx.Args().First()
	if outPath == "" {
		return fmt.Errorf("output-file is required")
	}

	secretBytes, err := secretBytesFromFlag(ctx.String("secret"))
	if err != nil {
		return err
	}

	secret, err := curveutil.ReduceScalar(secretBytes)
	if err != nil {
		return err
	}

	yScalar, err := curveutil.RandomScalar()
	if err != nil {
		return err
	}
	y := new(edwards25519.Point).ScalarBaseMult(yScalar)

	hashlock := sha256.Sum256(secretBytes)

	tr, err := dleq.Prove(secret, y, hashlock)
	if err != nil {
		return err
	}

	var embeddedSecret []byte
	if !ctx.Bool("omit-secret") {
		embeddedSecret = secretBytes
	}

	vec := testvectors.FromTranscript(tr, embeddedSecret)
	out, err := testvectors.Marshal(vec)
	if err != nil {
		return err
	}

	return ioutil.WriteFile(outPath, out, 0644)
}

func secretBytesFromFlag(hexSecret string) ([]byte, error) {
	if hexSecret == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return nil, err
		}
		return b, nil
	}

	b, err := hex.DecodeString(hexSecret)
	if err != nil {
		return nil, err
	}
	if len(b) != 32 {
		return nil, fmt.Errorf("secret must be 32 bytes, got %d", len(b))
	}
	return b, nil
}

var verifyCommand = cli.Command{
	Name:      "verify",
	Usage:     "validate a fixture file and print the verdict",
	ArgsUsage: "input-file",
	Action:    verifyVector,
}

func verifyVector(ctx *cli.Context) error {
	inPath := ctx.Args().First()
	if inPath == "" {
		return fmt.Errorf("input-file is required")
	}

	raw, err := ioutil.ReadFile(inPath)
	if err != nil {
		return err
	}

	vec, err := testvectors.Unmarshal(raw)
	if err != nil {
		return err
	}

	tr, err := vec.Transcript()
	if err != nil {
		return fmt.Errorf("fixture does not parse: %v", err)
	}

	ok, err := dleq.Verify(tr)
	if err != nil {
		return fmt.Errorf("fixture rejected: %v", err)
	}
	if !ok {
		fmt.Println("INVALID")
		os.Exit(1)
	}

	fmt.Println("VALID")
	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "dleqvectors"
	app.Version = "0.1"
	app.Usage = "generate and verify DLEQ transcript test fixtures"
	app.Commands = []cli.Command{
		generateCommand,
		verifyCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}
