package config

import (
	"fmt"

	"pdf-csv-extractor/internal/domain"
	"pdf-csv-extractor/internal/service"
	"pdf-csv-extractor/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config            domain.Config
	Logger            domain.Logger
	Extractor         domain.TextExtractor
	Staging           domain.StagingArea
	ConversionService domain.Converter
}

// NewContainer wires the application from environment configuration
func NewContainer() (*Container, error) {
	cfg := NewConfig()
	return NewContainerWith(cfg, logger.NewLogger(cfg.GetLogLevel()))
}

// NewContainerWith wires the application from an explicit configuration and logger
func NewContainerWith(cfg domain.Config, appLogger domain.Logger) (*Container, error) {
	extractor, err := service.NewTextExtractor(cfg.GetExtractorBackend(), cfg.GetPageTimeout(), appLogger)
	if err != nil {
		return nil, err
	}

	staging, err := service.NewDiskStaging(cfg.GetUploadPath(), appLogger)
	if err != nil {
		return nil, fmt.Errorf("initializing staging: %w", err)
	}

	conversion := service.NewConversionService(extractor, staging, cfg.GetAllowedExtensions(), appLogger)

	return &Container{
		Config:            cfg,
		Logger:            appLogger,
		Extractor:         extractor,
		Staging:           staging,
		ConversionService: conversion,
	}, nil
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}

// GetConversionService returns the PDF to CSV converter
func (c *Container) GetConversionService() domain.Converter {
	return c.ConversionService
}
