package commands

import (
	"context"
	"fmt"
	"log/slog"

	custodyUseCase "github.com/allisson/mist/internal/custody/usecase"
	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
)

// RunInitLedger registers the first Authority and prints the admin capability. The
// capability is shown only once; it is stored as a hash and cannot be recovered.
//
// Requirements: Database must be migrated and accessible.
func RunInitLedger(
	ctx context.Context,
	adminUseCase custodyUseCase.AdminUseCase,
	logger *slog.Logger,
	authorityHex string,
	format string,
	io IOTuple,
) error {
	authority, err := ledgerDomain.ParseIdentity(authorityHex)
	if err != nil {
		return fmt.Errorf("invalid authority: %w", err)
	}

	logger.Info("initializing ledger", slog.String("authority", authority.String()))

	capability, err := adminUseCase.InitLedger(ctx, authority)
	if err != nil {
		return fmt.Errorf("failed to initialize ledger: %w", err)
	}

	if format == "json" {
		if err := writeJSON(io.Writer, map[string]string{
			"authority":  authority.String(),
			"capability": capability,
		}); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintln(io.Writer, "\nLedger initialized successfully!")
		_, _ = fmt.Fprintf(io.Writer, "Authority: %s\n", authority.String())
		_, _ = fmt.Fprintf(io.Writer, "Admin capability: %s\n", capability)
		_, _ = fmt.Fprintln(io.Writer, "\nIMPORTANT: The capability is shown only once. Store it securely.")
	}

	logger.Info("ledger initialized", slog.String("authority", authority.String()))
	return nil
}

// RunSetPause pauses or resumes the ledger.
func RunSetPause(
	ctx context.Context,
	adminUseCase custodyUseCase.AdminUseCase,
	logger *slog.Logger,
	capability string,
	paused bool,
) error {
	if err := adminUseCase.SetPause(ctx, capability, paused); err != nil {
		return fmt.Errorf("failed to set pause: %w", err)
	}

	logger.Info("pause flag updated", slog.Bool("paused", paused))
	return nil
}

// RunRotateAuthority replaces the settlement Authority.
func RunRotateAuthority(
	ctx context.Context,
	adminUseCase custodyUseCase.AdminUseCase,
	logger *slog.Logger,
	capability string,
	authorityHex string,
) error {
	authority, err := ledgerDomain.ParseIdentity(authorityHex)
	if err != nil {
		return fmt.Errorf("invalid authority: %w", err)
	}

	if err := adminUseCase.RotateAuthority(ctx, capability, authority); err != nil {
		return fmt.Errorf("failed to rotate authority: %w", err)
	}

	logger.Info("authority rotated", slog.String("authority", authority.String()))
	return nil
}

// RunTopUp credits the custody pool without creating a deposit record.
func RunTopUp(
	ctx context.Context,
	adminUseCase custodyUseCase.AdminUseCase,
	logger *slog.Logger,
	capability string,
	asset string,
	amount uint64,
) error {
	payment := ledgerDomain.Funds{Asset: ledgerDomain.AssetType(asset), Amount: amount}
	if err := payment.Validate(); err != nil {
		return fmt.Errorf("invalid payment: %w", err)
	}

	if err := adminUseCase.TopUp(ctx, capability, payment); err != nil {
		return fmt.Errorf("failed to top up pool: %w", err)
	}

	logger.Info("pool topped up", slog.String("asset_type", asset), slog.Uint64("amount", amount))
	return nil
}
