// Package posconfig resolves the ZATCA configuration slice served to the POS
// client and consumed by the QR pipeline.
package posconfig

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/application/pos"
	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/domain/entity"
	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/infrastructure/certfile"
	"github.com/amr-devops/l10n-sa-edi-pos-direct/pkg/config"
)

// StaticProvider serves one company-wide configuration read at startup from
// the application config. Certificate material is loaded once during
// construction; a failed load is a normal condition and only downgrades the
// served configuration, never the provider itself.
type StaticProvider struct {
	cfg pos.ZATCAPosConfig
	log zerolog.Logger
}

// NewStaticProvider builds the provider from the application configuration.
func NewStaticProvider(zc config.ZATCAConfig, log zerolog.Logger) *StaticProvider {
	p := &StaticProvider{
		cfg: pos.ZATCAPosConfig{
			DirectModeEnabled: zc.DirectModeEnabled,
			Seller: entity.Seller{
				Name:        zc.SellerName,
				VAT:         zc.SellerVAT,
				CountryCode: zc.CountryCode,
			},
		},
		log: log,
	}
	p.cfg.Certificate = p.loadCertificate(zc)
	return p
}

// ZATCAConfig implements pos.ConfigProvider. The static provider serves the
// same configuration for every POS config id.
func (p *StaticProvider) ZATCAConfig(_ context.Context, posConfigID string) (*pos.ZATCAPosConfig, error) {
	cfg := p.cfg
	p.log.Debug().
		Str("pos_config", posConfigID).
		Bool("direct_mode", cfg.DirectModeEnabled).
		Bool("certificate", cfg.Certificate != nil).
		Msg("ZATCA config resolved")
	return &cfg, nil
}

// loadCertificate tries the configured material sources in order: inline
// values, then a .p12 file, then a PEM pair.
func (p *StaticProvider) loadCertificate(zc config.ZATCAConfig) *entity.CertificateData {
	if zc.PublicKey != "" || zc.CertificateID != "" || zc.SerialNumber != "" {
		return &entity.CertificateData{
			PublicKey:     zc.PublicKey,
			CertificateID: zc.CertificateID,
			SerialNumber:  zc.SerialNumber,
		}
	}
	if zc.CertPath == "" {
		return nil
	}

	cert, err := certfile.LoadFromP12(zc.CertPath, zc.CertPassword)
	if err != nil {
		cert, err = certfile.LoadFromPEM(zc.CertPath, zc.CertKeyPath)
	}
	if err != nil {
		p.log.Warn().Err(err).Str("path", zc.CertPath).
			Msg("certificate material unavailable, placeholders will be used")
		return nil
	}
	data, err := certfile.ExtractData(cert)
	if err != nil {
		p.log.Warn().Err(err).Msg("certificate data extraction failed")
		return nil
	}
	return data
}
