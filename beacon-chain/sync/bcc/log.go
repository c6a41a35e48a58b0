package bcc

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "bcc")
