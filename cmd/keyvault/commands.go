package main

import (
	"context"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"time"

	pb "github.com/and161185/keyvault/gen/go/keyvault/v1"
	"github.com/and161185/keyvault/internal/app"
	"github.com/and161185/keyvault/internal/convert"
	"github.com/and161185/keyvault/internal/errs"
	"github.com/and161185/keyvault/internal/policy"
	"github.com/and161185/keyvault/internal/vault"
)

const (
	envPassword       = "KEYVAULT_PASSWORD"
	envExportPassword = "KEYVAULT_EXPORT_PASSWORD"
	envNewPassword    = "KEYVAULT_NEW_PASSWORD"
)

func (c *cli) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(fs.Output(), "%s: unexpected arguments %v\n", fs.Name(), fs.Args())
		return errUsage
	}
	return nil
}

func (c *cli) warn(warnings []string) {
	for _, w := range warnings {
		fmt.Fprintln(c.stderr, "warning:", w)
	}
}

// unlocked opens the store and unlocks an existing vault. The caller closes v.
func (c *cli) unlocked(ctx context.Context, pwFlag string) (*app.Vault, error) {
	v, err := c.open(ctx)
	if err != nil {
		return nil, err
	}
	st, err := v.Service.Status(ctx)
	if err != nil {
		v.Close()
		return nil, err
	}
	if !st.Initialized {
		v.Close()
		return nil, fmt.Errorf("vault %q is not initialized (run keyvault init)", c.cfg.VaultID)
	}
	pw, err := c.password(pwFlag, envPassword, "Vault password")
	if err != nil {
		v.Close()
		return nil, err
	}
	defer wipe(pw)
	out, err := v.Service.Unlock(ctx, pw, "")
	if err != nil {
		v.Close()
		return nil, err
	}
	c.warn(out.Warnings)
	return v, nil
}

type passwordReport struct {
	Valid       bool     `json:"valid"`
	Strength    string   `json:"strength"`
	EntropyBits float64  `json:"entropyBits"`
	Errors      []string `json:"errors,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
}

func (c *cli) checkPassword(args []string) error {
	fs := c.flags("check-password")
	p := fs.String("p", "", "password")
	if err := parse(fs, args); err != nil {
		return err
	}
	pw, err := c.password(*p, envPassword, "Password")
	if err != nil {
		return err
	}
	defer wipe(pw)
	res := policy.ValidatePassword(pw)
	if err := c.printJSON(passwordReport{
		Valid:       res.Valid,
		Strength:    res.Strength.String(),
		EntropyBits: res.EntropyBits,
		Errors:      res.Errors,
		Warnings:    res.Warnings,
	}); err != nil {
		return err
	}
	if !res.Valid {
		return errs.Validation("check-password", errs.ErrWeakPassword)
	}
	return nil
}

type initReport struct {
	VaultID   string `json:"vaultId"`
	Backend   string `json:"backend"`
	UserID    string `json:"userId"`
	PublicKey string `json:"publicKey"`
}

func (c *cli) initVault(ctx context.Context, args []string) error {
	fs := c.flags("init")
	p := fs.String("p", "", "password")
	user := fs.String("user", "", "user id (generated when empty)")
	if err := parse(fs, args); err != nil {
		return err
	}
	v, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer v.Close()

	st, err := v.Service.Status(ctx)
	if err != nil {
		return err
	}
	if st.Initialized {
		return errs.State("init", fmt.Errorf("%w: vault %q", errs.ErrAlreadyExists, c.cfg.VaultID))
	}
	pw, confirm, err := c.newPassword(*p, envPassword, "New vault password")
	if err != nil {
		return err
	}
	defer wipe(pw, confirm)
	if string(pw) != string(confirm) {
		return errs.Validation("init", errs.ErrPasswordMismatch)
	}
	out, err := v.Service.Unlock(ctx, pw, *user)
	if err != nil {
		return err
	}
	c.warn(out.Warnings)
	return c.printJSON(initReport{
		VaultID:   c.cfg.VaultID,
		Backend:   v.Backend,
		UserID:    out.UserID,
		PublicKey: out.PublicKey,
	})
}

func (c *cli) status(ctx context.Context, args []string) error {
	fs := c.flags("status")
	daemon := fs.Bool("d", false, "ask keyvaultd instead of reading the store")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *daemon {
		cl, err := c.dial()
		if err != nil {
			return err
		}
		defer cl.Close()
		st, err := cl.Status(ctx)
		if err != nil {
			return err
		}
		return c.printJSON(st)
	}
	v, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer v.Close()
	st, err := v.Service.Status(ctx)
	if err != nil {
		return err
	}
	return c.printJSON(convert.ToProtoStatusResponse(st))
}

func (c *cli) history(ctx context.Context, args []string) error {
	if err := parse(c.flags("history"), args); err != nil {
		return err
	}
	v, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer v.Close()
	h, err := v.Service.History(ctx)
	if err != nil {
		return err
	}
	return c.printJSON(convert.ToProtoHistoryResponse(h))
}

func (c *cli) rotate(ctx context.Context, args []string) error {
	fs := c.flags("rotate")
	p := fs.String("p", "", "password")
	reason := fs.String("reason", vault.RotationManual, "rotation reason")
	if err := parse(fs, args); err != nil {
		return err
	}
	v, err := c.unlocked(ctx, *p)
	if err != nil {
		return err
	}
	defer v.Close()
	rec, err := v.Service.Rotate(ctx, *reason)
	if err != nil {
		return err
	}
	return c.printJSON(convert.ToProtoRotation(rec))
}

func (c *cli) passwd(ctx context.Context, args []string) error {
	fs := c.flags("passwd")
	p := fs.String("p", "", "current password")
	np := fs.String("new", "", "new password")
	if err := parse(fs, args); err != nil {
		return err
	}
	old, err := c.password(*p, envPassword, "Current vault password")
	if err != nil {
		return err
	}
	defer wipe(old)
	v, err := c.unlocked(ctx, string(old))
	if err != nil {
		return err
	}
	defer v.Close()

	pw, confirm, err := c.newPassword(*np, envNewPassword, "New vault password")
	if err != nil {
		return err
	}
	defer wipe(pw, confirm)
	if string(pw) != string(confirm) {
		return errs.Validation("passwd", errs.ErrPasswordMismatch)
	}
	if err := v.Service.ChangePassword(ctx, old, pw); err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, "password changed")
	return nil
}

type settingsReport struct {
	IdleTimeout    string `json:"idleTimeout"`
	LockOnSleep    bool   `json:"lockOnSystemSleep"`
	LockOnScreen   bool   `json:"lockOnScreenLock"`
	LockOnBlur     bool   `json:"lockOnWindowBlur"`
	LockOnMinimize bool   `json:"lockOnAppMinimize"`
}

func (c *cli) settings(ctx context.Context, args []string) error {
	fs := c.flags("settings")
	p := fs.String("p", "", "password")
	idle := fs.Duration("idle", 0, "idle timeout")
	sleep := fs.Bool("lock-on-sleep", false, "lock on system sleep")
	screen := fs.Bool("lock-on-screen", false, "lock on screen lock")
	blur := fs.Bool("lock-on-blur", false, "lock on window blur")
	minimize := fs.Bool("lock-on-minimize", false, "lock on app minimize")
	if err := parse(fs, args); err != nil {
		return err
	}
	v, err := c.unlocked(ctx, *p)
	if err != nil {
		return err
	}
	defer v.Close()

	st, err := v.Service.Status(ctx)
	if err != nil {
		return err
	}
	s := st.Settings
	changed := false
	fs.Visit(func(f *flag.Flag) {
		changed = changed || f.Name != "p"
		switch f.Name {
		case "idle":
			s.IdleTimeout = *idle
		case "lock-on-sleep":
			s.LockOnSystemSleep = *sleep
		case "lock-on-screen":
			s.LockOnScreenLock = *screen
		case "lock-on-blur":
			s.LockOnWindowBlur = *blur
		case "lock-on-minimize":
			s.LockOnAppMinimize = *minimize
		}
	})
	if changed {
		if err := v.Service.SetVaultSettings(ctx, s); err != nil {
			return err
		}
	}
	return c.printJSON(settingsReport{
		IdleTimeout:    s.IdleTimeout.String(),
		LockOnSleep:    s.LockOnSystemSleep,
		LockOnScreen:   s.LockOnScreenLock,
		LockOnBlur:     s.LockOnWindowBlur,
		LockOnMinimize: s.LockOnAppMinimize,
	})
}

func (c *cli) exportFile(ctx context.Context, args []string) error {
	fs := c.flags("export")
	p := fs.String("p", "", "vault password")
	e := fs.String("e", "", "export password")
	out := fs.String("o", "", "output file or directory")
	if err := parse(fs, args); err != nil {
		return err
	}
	v, err := c.unlocked(ctx, *p)
	if err != nil {
		return err
	}
	defer v.Close()

	pw, confirm, err := c.newPassword(*e, envExportPassword, "Export password")
	if err != nil {
		return err
	}
	defer wipe(pw, confirm)
	path, err := v.Service.ExportToFile(ctx, pw, confirm, *out)
	if err != nil {
		return err
	}
	return c.printJSON(map[string]string{"path": path})
}

func (c *cli) importFile(ctx context.Context, args []string) error {
	fs := c.flags("import")
	p := fs.String("p", "", "vault password")
	e := fs.String("e", "", "export password")
	file := fs.String("f", "", "export file")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *file == "" {
		fmt.Fprintln(c.stderr, "import: -f is required")
		return errUsage
	}
	v, err := c.unlocked(ctx, *p)
	if err != nil {
		return err
	}
	defer v.Close()

	pw, err := c.password(*e, envExportPassword, "Export password")
	if err != nil {
		return err
	}
	defer wipe(pw)
	res, err := v.Service.ImportFromFile(ctx, *file, pw)
	if err != nil {
		return err
	}
	return c.printJSON(convert.ToProtoImportResponse(res))
}

// ---- daemon commands ----

func (c *cli) unlockDaemon(ctx context.Context, args []string) error {
	fs := c.flags("unlock")
	p := fs.String("p", "", "password")
	user := fs.String("user", "", "expected user id")
	if err := parse(fs, args); err != nil {
		return err
	}
	pw, err := c.password(*p, envPassword, "Vault password")
	if err != nil {
		return err
	}
	defer wipe(pw)
	cl, err := c.dial()
	if err != nil {
		return err
	}
	defer cl.Close()

	resp, err := cl.Unlock(ctx, pw, *user)
	if err != nil {
		return err
	}
	if err := saveToken(resp.GetToken(), resp.GetExpiresAt().AsTime()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	c.warn(resp.GetWarnings())
	return c.printJSON(initReport{VaultID: c.cfg.VaultID, Backend: "keyvaultd", UserID: resp.GetUserId(), PublicKey: resp.GetPublicKey()})
}

func (c *cli) lockDaemon(ctx context.Context, args []string) error {
	fs := c.flags("lock")
	reason := fs.String("reason", string(vault.ReasonManual), "lock reason")
	if err := parse(fs, args); err != nil {
		return err
	}
	cl, err := c.dial()
	if err != nil {
		return err
	}
	defer cl.Close()
	locked, err := cl.Lock(ctx, *reason)
	if err != nil {
		return err
	}
	clearToken()
	return c.printJSON(&pb.LockResponse{Locked: locked})
}

type signReport struct {
	Signature string `json:"signature"`
	PublicKey string `json:"publicKey"`
}

func (c *cli) signDaemon(ctx context.Context, args []string) error {
	fs := c.flags("sign")
	msg := fs.String("m", "", "message")
	file := fs.String("f", "", "file to sign (- for stdin)")
	if err := parse(fs, args); err != nil {
		return err
	}
	var data []byte
	switch {
	case *msg != "" && *file != "":
		return errors.New("sign: use either -m or -f")
	case *msg != "":
		data = []byte(*msg)
	case *file != "":
		b, err := c.readAll(*file)
		if err != nil {
			return err
		}
		data = b
	default:
		fmt.Fprintln(c.stderr, "sign: -m or -f is required")
		return errUsage
	}

	tok, err := loadToken()
	if err != nil {
		return err
	}
	cl, err := c.dial()
	if err != nil {
		return err
	}
	defer cl.Close()
	cl.SetToken(tok)
	resp, err := cl.Sign(ctx, data)
	if err != nil {
		return err
	}
	return c.printJSON(signReport{
		Signature: base64.StdEncoding.EncodeToString(resp.GetSignature()),
		PublicKey: resp.GetPublicKey(),
	})
}

func (c *cli) watch(ctx context.Context, args []string) error {
	if err := parse(c.flags("watch"), args); err != nil {
		return err
	}
	cl, err := c.dial()
	if err != nil {
		return err
	}
	defer cl.Close()
	return cl.Events(ctx, func(e *pb.Event) {
		fmt.Fprintf(c.stdout, "%s %-9s %s -> %s (%s)\n",
			e.GetTimestamp().AsTime().Local().Format(time.TimeOnly), e.GetType(), e.GetPreviousState(), e.GetNewState(), e.GetReason())
	})
}
