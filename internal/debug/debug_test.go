/*
 * Copyright 2025 SREDiag Authors
 * Copyright 2023 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package debug

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type DebugTestSuite struct {
	suite.Suite
	saved int
}

func (s *DebugTestSuite) SetupTest() {
	s.saved = LogLevel()
}

func (s *DebugTestSuite) TearDownTest() {
	SetLogLevel(s.saved)
}

func (s *DebugTestSuite) TestLogColor() {
	SetLogLevel(LevelTrace)
	l := New("color", os.Stdout)

	l.Tracef("this is tracef %s", "hello world")
	l.Debugf("this is debugf %s", "hello world")
	l.Infof("this is infof %s", "hello world")
	l.Warnf("this is warnf %s", "hello world")
	l.Errorf("this is errorf %s", "hello world")
}

func (s *DebugTestSuite) TestLevelFilter() {
	var out bytes.Buffer
	l := New("filter", &out)

	SetLogLevel(LevelWarn)
	l.Debugf("hidden")
	l.Infof("hidden")
	s.Require().Equal(0, out.Len())

	l.Warnf("shown %d", 1)
	s.Require().Contains(out.String(), "Warn")
	s.Require().Contains(out.String(), "shown 1")
	s.Require().Contains(out.String(), "filter")
	s.Require().True(strings.HasSuffix(out.String(), "\n"))
}

func (s *DebugTestSuite) TestLocationPointsAtCaller() {
	var out bytes.Buffer
	l := New("loc", &out)
	SetLogLevel(LevelInfo)
	l.Infof("where")
	s.Require().Contains(out.String(), "debug_test.go:")
}

func (s *DebugTestSuite) TestNoPrint() {
	var out bytes.Buffer
	l := New("quiet", &out)
	SetLogLevel(LevelNoPrint)
	l.Errorf("nothing")
	s.Require().Equal(0, out.Len())
}

func (s *DebugTestSuite) TestSetLogLevelIgnoresOutOfRange() {
	SetLogLevel(LevelInfo)
	SetLogLevel(42)
	SetLogLevel(-1)
	s.Require().Equal(LevelInfo, LogLevel())
}

func (s *DebugTestSuite) TestOpenFileAppends() {
	path := filepath.Join(s.T().TempDir(), "NPClient.log")
	for i := 0; i < 2; i++ {
		f, err := OpenFile(path)
		s.Require().NoError(err)
		l := New("file", f)
		SetLogLevel(LevelInfo)
		l.Infof("line %d", i)
		s.Require().NoError(f.Close())
	}
	data, err := os.ReadFile(path)
	s.Require().NoError(err)
	s.Require().Contains(string(data), "line 0")
	s.Require().Contains(string(data), "line 1")
}

func TestDebugTestSuite(t *testing.T) {
	suite.Run(t, new(DebugTestSuite))
}
