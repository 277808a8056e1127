package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/ryan-huang1/raydium-sdk-V2-demo/internal/keypair"
	"github.com/ryan-huang1/raydium-sdk-V2-demo/internal/platform"
	"github.com/ryan-huang1/raydium-sdk-V2-demo/internal/vault"
)

func main() {
	// Best effort; a sandboxed environment may refuse the rlimit change.
	_ = platform.DisableCoreDumps()

	// ---- create ----
	createCmd := flag.NewFlagSet("create", flag.ExitOnError)
	createWallet := createCmd.String("wallet", "./wallet.json", "path to wallet file")
	createSecret := createCmd.String("secret", "", "import a base58 secret key instead of generating one")

	// ---- show ----
	showCmd := flag.NewFlagSet("show", flag.ExitOnError)
	showWallet := showCmd.String("wallet", "./wallet.json", "path to wallet file")

	// ---- export ----
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	exportWallet := exportCmd.String("wallet", "./wallet.json", "path to wallet file")

	// ---- rotate ----
	rotateCmd := flag.NewFlagSet("rotate", flag.ExitOnError)
	rotateWallet := rotateCmd.String("wallet", "./wallet.json", "path to wallet file")

	// ---- inspect ----
	inspectCmd := flag.NewFlagSet("inspect", flag.ExitOnError)
	inspectWallet := inspectCmd.String("wallet", "./wallet.json", "path to wallet file")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "create":
		_ = createCmd.Parse(os.Args[2:])
		dieIf(cmdCreate(*createWallet, *createSecret))
	case "show":
		_ = showCmd.Parse(os.Args[2:])
		dieIf(cmdShow(*showWallet))
	case "export":
		_ = exportCmd.Parse(os.Args[2:])
		dieIf(cmdExport(*exportWallet))
	case "rotate":
		_ = rotateCmd.Parse(os.Args[2:])
		dieIf(cmdRotate(*rotateWallet))
	case "inspect":
		_ = inspectCmd.Parse(os.Args[2:])
		dieIf(cmdInspect(*inspectWallet))
	default:
		usage()
		os.Exit(2)
	}
}

// ============ Commands ============

func cmdCreate(path, secret string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("refusing to overwrite %s", path)
	}

	var kp keypair.Keypair
	var err error
	if secret != "" {
		kp, err = keypair.FromBase58(secret)
	} else {
		kp, err = keypair.Generate()
	}
	if err != nil {
		return err
	}
	defer kp.Zero()

	pw, err := promptNewPassword()
	if err != nil {
		return err
	}
	rec, err := vault.Encrypt(kp, pw)
	if err != nil {
		return err
	}
	if err := vault.Save(path, rec); err != nil {
		return err
	}
	fmt.Println(kp.PublicKey())
	return nil
}

func cmdShow(path string) error {
	kp, err := unlock(path)
	if err != nil {
		return err
	}
	defer kp.Zero()
	fmt.Println(kp.PublicKey())
	return nil
}

func cmdExport(path string) error {
	kp, err := unlock(path)
	if err != nil {
		return err
	}
	defer kp.Zero()
	fmt.Println(kp.SecretBase58())
	return nil
}

func cmdRotate(path string) error {
	rec, err := vault.Load(path)
	if err != nil {
		return err
	}
	oldPw, err := promptPassword("Current password: ")
	if err != nil {
		return err
	}
	newPw, err := promptNewPassword()
	if err != nil {
		return err
	}
	next, err := vault.Rotate(rec, oldPw, newPw)
	if err != nil {
		return err
	}
	return vault.Save(path, next)
}

func cmdInspect(path string) error {
	rec, err := vault.Load(path)
	if err != nil {
		return err
	}
	fmt.Printf("version:   %d\n", rec.Version)
	fmt.Printf("publicKey: %s\n", rec.PublicKey)
	return nil
}

// ============ Helper Functions ============

func unlock(path string) (keypair.Keypair, error) {
	rec, err := vault.Load(path)
	if err != nil {
		return keypair.Keypair{}, err
	}
	pw, err := promptPassword("Password: ")
	if err != nil {
		return keypair.Keypair{}, err
	}
	return vault.Decrypt(rec, pw)
}

func promptNewPassword() (string, error) {
	pw, err := promptPassword("New password: ")
	if err != nil {
		return "", err
	}
	if pw == "" {
		return "", errors.New("password must not be empty")
	}
	again, err := promptPassword("Repeat password: ")
	if err != nil {
		return "", err
	}
	if pw != again {
		return "", errors.New("passwords do not match")
	}
	return pw, nil
}

// stdin is shared across prompts so piped input is not lost between
// reads.
var stdin = bufio.NewReader(os.Stdin)

func promptPassword(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		pw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(pw), nil
	}
	// Not a terminal: read one line (scripted use).
	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func dieIf(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, vault.ErrAuthentication) {
		fmt.Fprintln(os.Stderr, "error: wrong password or corrupted wallet file")
	} else {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	os.Exit(1)
}

func usage() {
	fmt.Print(`walletctl commands:

  create  --wallet path [--secret base58]   generate or import a keypair
  show    --wallet path                     print the public key
  export  --wallet path                     print the base58 secret key
  rotate  --wallet path                     change the wallet password
  inspect --wallet path                     print plaintext metadata
`)
}
